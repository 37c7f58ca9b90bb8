// Package app provides application-level orchestration and dependency
// injection. It wires all components together and manages the lifecycle.
package app

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/mohamadomran/Oul/internal/adapter/audio/mock"
	otoplayer "github.com/mohamadomran/Oul/internal/adapter/audio/oto"
	"github.com/mohamadomran/Oul/internal/adapter/eventbus"
	"github.com/mohamadomran/Oul/internal/adapter/share"
	"github.com/mohamadomran/Oul/internal/adapter/speech"
	"github.com/mohamadomran/Oul/internal/adapter/storage"
	fyneui "github.com/mohamadomran/Oul/internal/adapter/ui/fyne"
	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/logger"
	"github.com/mohamadomran/Oul/internal/ports"
	"github.com/mohamadomran/Oul/internal/service"
)

// Application is the root structure holding all wired dependencies.
// Construction is the only place components learn about each other.
type Application struct {
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus ports.EventBus
	player   ports.SoundPlayer
	store    ports.KeyValueStore
	speaker  ports.Speaker

	// Domain data
	catalog *catalog.Catalog

	// Services
	playbackService     *service.PlaybackService
	favoritesService    *service.FavoritesService
	settingsService     *service.SettingsService
	customPhraseService *service.CustomPhraseService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AssetsDir is the directory holding the bundled audio files
	AssetsDir string

	// SoundCacheSize bounds the number of decoded sounds kept in memory
	SoundCacheSize int

	// UseMockAudio selects the mock sound player (for testing)
	UseMockAudio bool

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// TestFyneApp injects a test Fyne app (nil for production)
	TestFyneApp fyne.App

	// Headless skips UI construction (doctor mode, tests)
	Headless bool
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:          "com.mohamadomran.oul",
		AssetsDir:      "assets/audio",
		SoundCacheSize: service.DefaultSoundCacheSize,
		LogLevel:       loggerCfg.Level,
	}
}

// NewApplication creates the application with all dependencies wired.
func NewApplication(config Config) (*Application, error) {
	app := &Application{}

	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: "text",
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("version", GetVersionInfo().FullString()))

	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("load phrase catalog: %w", err)
	}
	app.catalog = cat

	app.eventBus = eventbus.NewSyncEventBus(
		app.logger.With(slog.String("component", "eventbus")))

	if config.UseMockAudio {
		app.player = mock.NewPlayer()
	} else {
		app.player = otoplayer.NewPlayer(
			app.logger.With(slog.String("player", "oto")), config.AssetsDir)
	}

	app.store = storage.NewFyneStore(app.fyneApp.Preferences())
	app.speaker = speech.NewNoopSpeaker(app.logger.With(slog.String("component", "speech")))

	app.playbackService, err = service.NewPlaybackService(
		app.logger.With(slog.String("service", "playback")),
		app.catalog,
		app.player,
		app.eventBus,
		config.SoundCacheSize,
	)
	if err != nil {
		return nil, fmt.Errorf("create playback service: %w", err)
	}

	app.favoritesService = service.NewFavoritesService(
		app.logger.With(slog.String("service", "favorites")),
		app.store,
		app.eventBus,
	)
	app.favoritesService.Initialize()

	app.settingsService = service.NewSettingsService(
		app.logger.With(slog.String("service", "settings")),
		app.store,
		app.eventBus,
	)
	app.settingsService.Load()

	app.customPhraseService = service.NewCustomPhraseService(
		app.logger.With(slog.String("service", "custom_phrases")),
		app.store,
		app.eventBus,
		app.speaker,
	)
	app.customPhraseService.Initialize()

	// Saved volume applies to the engine from the first sound on.
	if err := app.playbackService.SetVolume(app.settingsService.Get().Volume); err != nil {
		app.logger.Warn("failed to apply saved volume", slog.Any("error", err))
	}

	if !config.Headless {
		shareTarget := share.NewWhatsAppTarget(
			app.logger.With(slog.String("component", "share")), app.fyneApp)

		app.mainWindow = fyneui.NewMainWindow(app.fyneApp, app.catalog)
		app.presenter = fyneui.NewPresenter(
			app.logger.With(slog.String("component", "presenter")),
			app.catalog,
			app.playbackService,
			app.favoritesService,
			app.settingsService,
			shareTarget,
			app.eventBus,
			app.mainWindow,
		)
		app.mainWindow.SetPresenter(app.presenter)
		app.mainWindow.SetOnBeforeClose(func() {
			app.playbackService.Stop()
		})
	}

	return app, nil
}

// Catalog exposes the loaded phrase catalog.
func (a *Application) Catalog() *catalog.Catalog {
	return a.catalog
}

// Playback exposes the playback engine.
func (a *Application) Playback() *service.PlaybackService {
	return a.playbackService
}

// Favorites exposes the favorites store.
func (a *Application) Favorites() *service.FavoritesService {
	return a.favoritesService
}

// Settings exposes the settings store.
func (a *Application) Settings() *service.SettingsService {
	return a.settingsService
}

// CustomPhrases exposes the custom phrase store.
func (a *Application) CustomPhrases() *service.CustomPhraseService {
	return a.customPhraseService
}

// Run shows the main window and blocks until it closes.
func (a *Application) Run() {
	a.logger.Info("application started")
	a.mainWindow.ShowAndRun()
}

// Shutdown gracefully shuts everything down, in reverse creation order.
func (a *Application) Shutdown() {
	a.logger.Info("shutting down application")

	if a.presenter != nil {
		a.presenter.Shutdown()
	}
	if a.playbackService != nil {
		a.playbackService.Shutdown()
	}
	if a.player != nil {
		if err := a.player.Close(); err != nil {
			a.logger.Warn("failed to close sound player", slog.Any("error", err))
		}
	}
	if a.eventBus != nil {
		if err := a.eventBus.Close(); err != nil {
			a.logger.Warn("failed to close event bus", slog.Any("error", err))
		}
	}

	a.logger.Info("application shutdown complete")
}
