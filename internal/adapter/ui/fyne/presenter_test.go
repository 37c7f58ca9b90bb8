package fyne

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamadomran/Oul/internal/adapter/audio/mock"
	"github.com/mohamadomran/Oul/internal/adapter/eventbus"
	"github.com/mohamadomran/Oul/internal/adapter/storage"
	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/logger"
	"github.com/mohamadomran/Oul/internal/service"
)

// fakeView records UIView calls for assertions.
type fakeView struct {
	mu             sync.Mutex
	playStates     []bool
	playLabels     []string
	favoriteStates map[string]bool
	refreshCount   int
	errors         []string
}

func newFakeView() *fakeView {
	return &fakeView{favoriteStates: make(map[string]bool)}
}

func (v *fakeView) SetPlayState(playing bool, phraseLabel string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.playStates = append(v.playStates, playing)
	v.playLabels = append(v.playLabels, phraseLabel)
}

func (v *fakeView) SetFavoriteState(category domain.Category, phraseID string, favorite bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.favoriteStates[string(category)+"/"+phraseID] = favorite
}

func (v *fakeView) RefreshFavorites([]domain.FavoriteRef) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.refreshCount++
}

func (v *fakeView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, message)
}

type fakeShare struct {
	messages []string
}

func (f *fakeShare) Share(message string) error {
	f.messages = append(f.messages, message)
	return nil
}

type presenterFixture struct {
	presenter *Presenter
	view      *fakeView
	player    *mock.Player
	share     *fakeShare
	settings  *service.SettingsService
}

func newPresenterFixture(t *testing.T) *presenterFixture {
	t.Helper()

	log := logger.NewTestLogger()
	cat, err := catalog.New()
	require.NoError(t, err)

	bus := eventbus.NewSyncEventBus(log)
	t.Cleanup(func() { _ = bus.Close() })

	player := mock.NewPlayer()
	playback, err := service.NewPlaybackService(log, cat, player, bus, 8)
	require.NoError(t, err)
	t.Cleanup(playback.Shutdown)

	store := storage.NewMemoryStore()
	favorites := service.NewFavoritesService(log, store, bus)
	favorites.Initialize()
	settings := service.NewSettingsService(log, store, bus)
	settings.Load()

	view := newFakeView()
	shareTarget := &fakeShare{}

	presenter := NewPresenter(log, cat, playback, favorites, settings, shareTarget, bus, view)
	t.Cleanup(presenter.Shutdown)

	return &presenterFixture{
		presenter: presenter,
		view:      view,
		player:    player,
		share:     shareTarget,
		settings:  settings,
	}
}

func TestPresenter_PhraseTappedPlays(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.PhraseTapped(domain.CategoryPain, "pain_head")
	assert.Equal(t, []bool{true}, f.view.playStates)
	assert.Equal(t, []string{"pain_head"}, f.view.playLabels)

	f.player.Complete(true)
	assert.Equal(t, []bool{true, false}, f.view.playStates)
}

func TestPresenter_TappingPlayingPhraseStops(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.PhraseTapped(domain.CategoryPain, "pain_head")
	f.presenter.PhraseTapped(domain.CategoryPain, "pain_head")

	assert.Equal(t, []bool{true, false}, f.view.playStates)
	assert.Equal(t, domain.InvalidSoundHandle, f.player.Playing())
}

func TestPresenter_TappingDifferentPhraseSupersedes(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.PhraseTapped(domain.CategoryPain, "pain_head")
	f.presenter.PhraseTapped(domain.CategoryBasicNeeds, "bn_water")

	assert.Equal(t, []bool{true, false, true}, f.view.playStates)
	assert.Equal(t, "bn_water", f.view.playLabels[2])
}

func TestPresenter_LoadFailureShowsError(t *testing.T) {
	f := newPresenterFixture(t)

	f.player.SetFailOpen(true)
	f.presenter.PhraseTapped(domain.CategoryPain, "pain_head")

	require.Len(t, f.view.errors, 1)
	assert.Contains(t, f.view.errors[0], "load")
}

func TestPresenter_FavoriteTapped(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.FavoriteTapped(domain.CategoryPain, "pain_head")
	assert.True(t, f.view.favoriteStates["pain/pain_head"])
	assert.Equal(t, 1, f.view.refreshCount)
	assert.True(t, f.presenter.IsFavorite(domain.CategoryPain, "pain_head"))

	f.presenter.FavoriteTapped(domain.CategoryPain, "pain_head")
	assert.False(t, f.view.favoriteStates["pain/pain_head"])
	assert.Equal(t, 2, f.view.refreshCount)
}

func TestPresenter_ShareTapped(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.ShareTapped(domain.CategoryPain, "pain_head")
	require.Len(t, f.share.messages, 1)
	assert.Contains(t, f.share.messages[0], "(")

	// Unknown phrases share nothing.
	f.presenter.ShareTapped(domain.CategoryPain, "missing")
	assert.Len(t, f.share.messages, 1)
}

func TestPresenter_VolumeSettingAppliesToEngine(t *testing.T) {
	f := newPresenterFixture(t)

	require.NoError(t, f.settings.Update(func(settings *domain.Settings) {
		settings.Volume = 0.4
	}))

	f.presenter.PhraseTapped(domain.CategoryPain, "pain_head")
	assert.Equal(t, 0.4, f.player.Volume(f.player.Playing()))
}

func TestPresenter_ShutdownUnsubscribes(t *testing.T) {
	f := newPresenterFixture(t)

	f.presenter.Shutdown()
	f.presenter.Shutdown()

	// Events no longer reach the view.
	f.presenter.PhraseTapped(domain.CategoryPain, "pain_head")
	assert.Empty(t, f.view.playStates)
}
