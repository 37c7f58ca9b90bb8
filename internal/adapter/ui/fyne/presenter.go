// Package fyne provides the Fyne UI adapter.
// It follows the MVP pattern: the window is a dumb view, the presenter maps
// domain events to view updates and user taps to service calls.
package fyne

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
	"github.com/mohamadomran/Oul/internal/service"
)

// UIView is what the presenter needs from the window.
type UIView interface {
	// SetPlayState reflects the engine's playing/idle state, naming the
	// active phrase while playing.
	SetPlayState(playing bool, phraseLabel string)

	// SetFavoriteState updates the favorite marker of a single phrase button.
	SetFavoriteState(category domain.Category, phraseID string, favorite bool)

	// RefreshFavorites rebuilds the favorites tab.
	RefreshFavorites(refs []domain.FavoriteRef)

	// ShowError surfaces a non-fatal error to the user.
	ShowError(message string)
}

// Presenter coordinates between the services and the view.
//
// Thread-safe: event handlers may fire from engine callbacks.
type Presenter struct {
	logger *slog.Logger

	catalog   *catalog.Catalog
	playback  *service.PlaybackService
	favorites *service.FavoritesService
	settings  *service.SettingsService
	share     ports.ShareTarget

	bus  ports.EventBus
	view UIView

	mu              sync.Mutex
	subscriptions   []domain.SubscriptionID
	currentCategory domain.Category
	currentPhraseID string
	shutdownOnce    sync.Once
}

// NewPresenter creates the presenter and subscribes it to the event bus.
func NewPresenter(
	logger *slog.Logger,
	cat *catalog.Catalog,
	playback *service.PlaybackService,
	favorites *service.FavoritesService,
	settings *service.SettingsService,
	share ports.ShareTarget,
	bus ports.EventBus,
	view UIView,
) *Presenter {
	p := &Presenter{
		logger:    logger,
		catalog:   cat,
		playback:  playback,
		favorites: favorites,
		settings:  settings,
		share:     share,
		bus:       bus,
		view:      view,
	}
	p.subscribe()
	return p
}

func (p *Presenter) subscribe() {
	p.subscriptions = append(p.subscriptions,
		p.bus.Subscribe(domain.EventPlaybackState, p.onPlaybackState),
		p.bus.Subscribe(domain.EventAudioError, p.onAudioError),
		p.bus.Subscribe(domain.EventFavoritesChanged, p.onFavoritesChanged),
		p.bus.Subscribe(domain.EventSettingsChanged, p.onSettingsChanged),
	)
}

func (p *Presenter) onPlaybackState(event domain.Event) {
	e := event.(domain.PlaybackStateEvent)

	p.mu.Lock()
	if e.Playing {
		p.currentCategory = e.Category
		p.currentPhraseID = e.PhraseID
	} else {
		p.currentCategory = ""
		p.currentPhraseID = ""
	}
	p.mu.Unlock()

	label := ""
	if e.Playing {
		label = e.PhraseID
	}
	p.view.SetPlayState(e.Playing, label)
}

func (p *Presenter) onAudioError(event domain.Event) {
	e := event.(domain.AudioErrorEvent)
	p.logger.Warn("audio error surfaced to user", slog.Any("error", e.Err))
	p.view.ShowError(e.Err.Error())
}

func (p *Presenter) onFavoritesChanged(domain.Event) {
	p.view.RefreshFavorites(p.favorites.Refs())
}

func (p *Presenter) onSettingsChanged(event domain.Event) {
	e := event.(domain.SettingsChangedEvent)
	if err := p.playback.SetVolume(e.Settings.Volume); err != nil {
		p.logger.Warn("failed to apply volume setting", slog.Any("error", err))
	}
}

// PhraseTapped plays a phrase. Tapping the phrase that is already playing
// stops it instead, which is the tap-to-toggle behavior users expect.
func (p *Presenter) PhraseTapped(category domain.Category, phraseID string) {
	p.mu.Lock()
	isCurrent := p.playback.IsPlaying() &&
		p.currentCategory == category && p.currentPhraseID == phraseID
	p.mu.Unlock()

	if isCurrent {
		p.playback.Stop()
		return
	}

	// Errors also arrive via the bus and are shown there.
	if err := p.playback.Play(category, phraseID); err != nil {
		p.logger.Debug("play failed", slog.Any("error", err))
	}
}

// FavoriteTapped toggles a phrase's favorite state.
func (p *Presenter) FavoriteTapped(category domain.Category, phraseID string) {
	favorite := p.favorites.ToggleFavorite(category, phraseID)
	p.view.SetFavoriteState(category, phraseID, favorite)
}

// StopTapped stops whatever is playing.
func (p *Presenter) StopTapped() {
	p.playback.Stop()
}

// ShareTapped sends a phrase's text through the configured share target.
func (p *Presenter) ShareTapped(category domain.Category, phraseID string) {
	phrase, ok := p.catalog.Phrase(category, phraseID)
	if !ok {
		return
	}

	message := phrase.ArabicText
	if phrase.EnglishText != "" {
		message = fmt.Sprintf("%s (%s)", phrase.ArabicText, phrase.EnglishText)
	}

	if err := p.share.Share(message); err != nil {
		p.logger.Warn("share failed", slog.Any("error", err))
		p.view.ShowError(err.Error())
	}
}

// CategoryOpened warms the sound cache for the tab the user switched to.
func (p *Presenter) CategoryOpened(category domain.Category) {
	go func() {
		if err := p.playback.Preload(category); err != nil {
			p.logger.Debug("preload failed",
				slog.String("category", string(category)),
				slog.Any("error", err))
		}
	}()
}

// IsFavorite reports a phrase's favorite state for initial rendering.
func (p *Presenter) IsFavorite(category domain.Category, phraseID string) bool {
	return p.favorites.IsFavorite(category, phraseID)
}

// Settings returns the current settings for initial rendering.
func (p *Presenter) Settings() domain.Settings {
	return p.settings.Get()
}

// Shutdown unsubscribes the presenter from the bus. Idempotent.
func (p *Presenter) Shutdown() {
	p.shutdownOnce.Do(func() {
		for _, id := range p.subscriptions {
			p.bus.Unsubscribe(id)
		}
		p.subscriptions = nil
	})
}
