package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamadomran/Oul/internal/adapter/audio/mock"
	"github.com/mohamadomran/Oul/internal/adapter/eventbus"
	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/logger"
	"github.com/mohamadomran/Oul/internal/testutil"
)

type playbackFixture struct {
	service *PlaybackService
	player  *mock.Player
	bus     *eventbus.SyncEventBus
}

func newPlaybackFixture(t *testing.T, cacheSize int) *playbackFixture {
	t.Helper()

	log := logger.NewTestLogger()
	cat, err := catalog.New()
	require.NoError(t, err)

	player := mock.NewPlayer()
	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	service, err := NewPlaybackService(log, cat, player, bus, cacheSize)
	require.NoError(t, err)
	t.Cleanup(service.Shutdown)

	return &playbackFixture{service: service, player: player, bus: bus}
}

// transitions records every playing/idle transition in delivery order.
func (f *playbackFixture) transitions(t *testing.T) *[]bool {
	t.Helper()

	var got []bool
	f.service.OnPlaybackStateChange(func(playing bool) {
		got = append(got, playing)
	})
	return &got
}

// audioErrors records every published audio error in delivery order.
func (f *playbackFixture) audioErrors(t *testing.T) *[]*domain.AudioError {
	t.Helper()

	var got []*domain.AudioError
	f.service.OnError(func(err *domain.AudioError) {
		got = append(got, err)
	})
	return &got
}

func TestPlaybackService_PlayAndComplete(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newPlaybackFixture(t, 8)
	transitions := f.transitions(t)

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	assert.True(t, f.service.IsPlaying())
	assert.Equal(t, 1, f.player.OpenCount("pain/head.mp3"))
	assert.NotEqual(t, domain.InvalidSoundHandle, f.player.Playing())

	f.player.Complete(true)
	assert.False(t, f.service.IsPlaying())
	assert.Equal(t, []bool{true, false}, *transitions)
}

func TestPlaybackService_PhraseNotFound(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	err := f.service.Play(domain.CategoryPain, "no_such_phrase")
	assert.ErrorIs(t, err, domain.ErrPhraseNotFound)
	assert.False(t, f.service.IsPlaying())

	err = f.service.Play("not_a_category", "pain_head")
	assert.ErrorIs(t, err, domain.ErrPhraseNotFound)
}

func TestPlaybackService_PlaySupersedes(t *testing.T) {
	f := newPlaybackFixture(t, 8)
	transitions := f.transitions(t)

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	first := f.player.Playing()

	require.NoError(t, f.service.Play(domain.CategoryBasicNeeds, "bn_water"))
	second := f.player.Playing()

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, f.player.StopCount(first))
	assert.True(t, f.service.IsPlaying())

	// Each supersede yields a full idle/playing transition pair.
	assert.Equal(t, []bool{true, false, true}, *transitions)

	f.player.Complete(true)
	assert.Equal(t, []bool{true, false, true, false}, *transitions)
}

func TestPlaybackService_StaleCompletionIgnored(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))

	// Capture the first play's callback by completing after a supersede: the
	// mock drops the parked callback on Stop, so simulate staleness directly
	// through a second play followed by the second completion only.
	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_chest"))
	f.player.Complete(true)
	assert.False(t, f.service.IsPlaying())

	// A late Complete with nothing playing must not flip state.
	f.player.Complete(true)
	assert.False(t, f.service.IsPlaying())
}

func TestPlaybackService_CacheReuse(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	f.player.Complete(true)

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	f.player.Complete(true)

	assert.Equal(t, 1, f.player.OpenCount("pain/head.mp3"))
	assert.Equal(t, 1, f.service.CacheSize())
}

func TestPlaybackService_LoadFailure(t *testing.T) {
	f := newPlaybackFixture(t, 8)
	errs := f.audioErrors(t)

	f.player.SetFailOpen(true)
	err := f.service.Play(domain.CategoryPain, "pain_head")
	require.Error(t, err)

	var audioErr *domain.AudioError
	require.ErrorAs(t, err, &audioErr)
	assert.Equal(t, domain.AudioErrorLoad, audioErr.Kind)
	assert.Equal(t, "pain_head", audioErr.PhraseID)

	require.Len(t, *errs, 1)
	assert.Equal(t, domain.AudioErrorLoad, (*errs)[0].Kind)
	assert.False(t, f.service.IsPlaying())

	// The engine stays usable after a failed load.
	f.player.SetFailOpen(false)
	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	assert.True(t, f.service.IsPlaying())
}

func TestPlaybackService_StartFailure(t *testing.T) {
	f := newPlaybackFixture(t, 8)
	errs := f.audioErrors(t)
	transitions := f.transitions(t)

	f.player.SetFailPlay(true)
	err := f.service.Play(domain.CategoryPain, "pain_head")
	require.Error(t, err)

	var audioErr *domain.AudioError
	require.ErrorAs(t, err, &audioErr)
	assert.Equal(t, domain.AudioErrorPlayback, audioErr.Kind)

	require.Len(t, *errs, 1)
	assert.False(t, f.service.IsPlaying())

	// The optimistic playing transition is rolled back.
	assert.Equal(t, []bool{true, false}, *transitions)
}

func TestPlaybackService_MidStreamFailure(t *testing.T) {
	f := newPlaybackFixture(t, 8)
	errs := f.audioErrors(t)

	require.NoError(t, f.service.Play(domain.CategoryEmotions, "em_happy"))

	f.player.Complete(false)
	assert.False(t, f.service.IsPlaying())

	require.Len(t, *errs, 1)
	assert.Equal(t, domain.AudioErrorPlayback, (*errs)[0].Kind)
	assert.ErrorIs(t, (*errs)[0].Err, domain.ErrPlaybackFailed)
}

func TestPlaybackService_StopIdempotent(t *testing.T) {
	f := newPlaybackFixture(t, 8)
	transitions := f.transitions(t)

	// Stop with nothing playing is a no-op and publishes nothing.
	f.service.Stop()
	assert.Empty(t, *transitions)

	require.NoError(t, f.service.Play(domain.CategoryConversation, "conv_hello"))
	handle := f.player.Playing()

	f.service.Stop()
	assert.False(t, f.service.IsPlaying())
	assert.Equal(t, 1, f.player.StopCount(handle))

	f.service.Stop()
	assert.Equal(t, []bool{true, false}, *transitions)

	// A completion from the stopped sound never arrives: the platform dropped
	// the callback on Stop.
	f.player.Complete(true)
	assert.Equal(t, []bool{true, false}, *transitions)
}

func TestPlaybackService_EvictionReleasesHandle(t *testing.T) {
	f := newPlaybackFixture(t, 1)

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	first := f.player.Playing()
	f.player.Complete(true)

	require.NoError(t, f.service.Play(domain.CategoryBasicNeeds, "bn_water"))

	assert.True(t, f.player.Released(first))
	assert.Equal(t, 1, f.service.CacheSize())
	assert.True(t, f.service.IsPlaying())
}

func TestPlaybackService_EvictionOfCurrentStopsPlayback(t *testing.T) {
	f := newPlaybackFixture(t, 1)
	transitions := f.transitions(t)

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	current := f.player.Playing()
	require.NotEqual(t, domain.InvalidSoundHandle, current)

	// Warming another category through a capacity-1 cache evicts the playing
	// sound; the engine must notice and transition to idle.
	require.NoError(t, f.service.Preload(domain.CategoryEmotions))

	assert.False(t, f.service.IsPlaying())
	assert.True(t, f.player.Released(current))
	assert.Equal(t, []bool{true, false}, *transitions)
	assert.Equal(t, 1, f.service.CacheSize())
}

func TestPlaybackService_Preload(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	require.NoError(t, f.service.Preload(domain.CategoryEmotions))
	assert.Equal(t, 4, f.service.CacheSize())

	// Preloading again opens nothing new.
	require.NoError(t, f.service.Preload(domain.CategoryEmotions))
	assert.Equal(t, 1, f.player.OpenCount("emotions/happy.mp3"))

	// A preloaded phrase plays without another open.
	require.NoError(t, f.service.Play(domain.CategoryEmotions, "em_happy"))
	assert.Equal(t, 1, f.player.OpenCount("emotions/happy.mp3"))
}

func TestPlaybackService_PreloadReportsFirstFailure(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	f.player.SetFailOpen(true)
	err := f.service.Preload(domain.CategoryPain)
	assert.Error(t, err)
	assert.Equal(t, 0, f.service.CacheSize())
}

func TestPlaybackService_SetVolume(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	assert.ErrorIs(t, f.service.SetVolume(-0.1), domain.ErrInvalidVolume)
	assert.ErrorIs(t, f.service.SetVolume(1.1), domain.ErrInvalidVolume)

	require.NoError(t, f.service.SetVolume(0.5))
	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	assert.Equal(t, 0.5, f.player.Volume(f.player.Playing()))

	// Volume changes apply to the current sound immediately.
	current := f.player.Playing()
	require.NoError(t, f.service.SetVolume(0.8))
	assert.Equal(t, 0.8, f.player.Volume(current))
}

func TestPlaybackService_ReleaseAll(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	require.NoError(t, f.service.Preload(domain.CategoryPain))
	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))

	f.service.ReleaseAll()
	assert.False(t, f.service.IsPlaying())
	assert.Equal(t, 0, f.service.CacheSize())
	assert.Equal(t, 0, f.player.LoadedCount())
}

func TestPlaybackService_Unsubscribe(t *testing.T) {
	f := newPlaybackFixture(t, 8)

	calls := 0
	unsubscribe := f.service.OnPlaybackStateChange(func(bool) { calls++ })

	require.NoError(t, f.service.Play(domain.CategoryPain, "pain_head"))
	assert.Equal(t, 1, calls)

	unsubscribe()
	f.service.Stop()
	assert.Equal(t, 1, calls)
}

func TestPlaybackService_ConcurrentPlayAndStop(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	f := newPlaybackFixture(t, 4)
	cat, err := catalog.New()
	require.NoError(t, err)
	phrases := cat.PhrasesByCategory(domain.CategoryConversation)
	require.NotEmpty(t, phrases)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				phrase := phrases[(n+j)%len(phrases)]
				_ = f.service.Play(domain.CategoryConversation, phrase.ID)
				if j%5 == 0 {
					f.service.Stop()
				}
			}
		}(i)
	}
	wg.Wait()

	// At most one sound survives all the races.
	f.service.Stop()
	assert.False(t, f.service.IsPlaying())
	assert.Equal(t, domain.InvalidSoundHandle, f.player.Playing())
}
