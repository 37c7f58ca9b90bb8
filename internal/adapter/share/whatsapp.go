// Package share provides ShareTarget adapters that hand a pre-filled message
// to an external app through a URL scheme.
package share

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mohamadomran/Oul/internal/ports"
)

// URLOpener opens a URL in the platform's default handler.
// fyne.App satisfies this.
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// WhatsAppTarget shares a message through the wa.me click-to-chat scheme,
// leaving the recipient choice to the external app.
type WhatsAppTarget struct {
	logger *slog.Logger
	opener URLOpener
}

// NewWhatsAppTarget creates a share target backed by the given opener.
func NewWhatsAppTarget(logger *slog.Logger, opener URLOpener) *WhatsAppTarget {
	return &WhatsAppTarget{logger: logger, opener: opener}
}

// Share opens WhatsApp with message pre-filled.
func (t *WhatsAppTarget) Share(message string) error {
	u := &url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/",
		RawQuery: url.Values{"text": {message}}.Encode(),
	}

	t.logger.Debug("sharing via whatsapp", slog.Int("message_len", len(message)))
	if err := t.opener.OpenURL(u); err != nil {
		return fmt.Errorf("open share url: %w", err)
	}
	return nil
}

var _ ports.ShareTarget = (*WhatsAppTarget)(nil)
