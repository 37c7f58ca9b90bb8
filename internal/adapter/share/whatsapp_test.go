package share

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamadomran/Oul/internal/logger"
)

type fakeOpener struct {
	opened []*url.URL
	fail   bool
}

func (f *fakeOpener) OpenURL(u *url.URL) error {
	if f.fail {
		return errors.New("no handler")
	}
	f.opened = append(f.opened, u)
	return nil
}

func TestWhatsAppTarget_Share(t *testing.T) {
	opener := &fakeOpener{}
	target := NewWhatsAppTarget(logger.NewTestLogger(), opener)

	require.NoError(t, target.Share("عندي وجع راسي"))
	require.Len(t, opener.opened, 1)

	u := opener.opened[0]
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "عندي وجع راسي", u.Query().Get("text"))
}

func TestWhatsAppTarget_ShareOpenFailure(t *testing.T) {
	target := NewWhatsAppTarget(logger.NewTestLogger(), &fakeOpener{fail: true})
	assert.Error(t, target.Share("مرحبا"))
}
