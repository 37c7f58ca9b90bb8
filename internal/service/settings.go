package service

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
)

// settingsKey is the persistence key for the settings record.
const settingsKey = "app_settings"

// SettingsService holds the persisted app configuration.
//
// Loading merges the stored record over the compiled-in defaults, so a record
// written by an older release simply inherits defaults for fields it predates.
// Load never fails; Save does, because losing a settings write is something
// the caller should know about.
//
// Thread-safe.
type SettingsService struct {
	logger *slog.Logger
	store  ports.KeyValueStore
	bus    ports.EventBus

	mu       sync.RWMutex
	settings domain.Settings
	loaded   bool
}

// NewSettingsService creates the settings store. Call Load before use.
func NewSettingsService(logger *slog.Logger, store ports.KeyValueStore, bus ports.EventBus) *SettingsService {
	return &SettingsService{
		logger:   logger,
		store:    store,
		bus:      bus,
		settings: domain.DefaultSettings(),
	}
}

// Load reads the persisted record, merges it over the defaults and returns
// the result. Idempotent. A missing, unreadable or corrupt record yields the
// defaults; Load never fails.
func (s *SettingsService) Load() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.settings
	}
	s.loaded = true

	value, ok, err := s.store.GetItem(settingsKey)
	if err != nil {
		s.logger.Warn("failed to load settings, using defaults", slog.Any("error", err))
		return s.settings
	}
	if !ok {
		return s.settings
	}

	// Unmarshal into a defaults copy: absent fields keep their default value.
	merged := domain.DefaultSettings()
	if err := json.Unmarshal([]byte(value), &merged); err != nil {
		s.logger.Warn("corrupt settings record, using defaults", slog.Any("error", err))
		return s.settings
	}

	s.settings = merged
	s.logger.Debug("settings loaded")
	return s.settings
}

// Get returns the current settings.
func (s *SettingsService) Get() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Save replaces the settings and persists them. On a write failure the
// in-memory settings keep the new value and the error is returned.
func (s *SettingsService) Save(settings domain.Settings) error {
	s.mu.Lock()
	s.settings = settings
	err := s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewSettingsChangedEvent(settings))
	return err
}

// Update applies a mutation to a copy of the current settings and saves the
// result. The apply function runs with the store lock held; it must not call
// back into the service.
func (s *SettingsService) Update(apply func(settings *domain.Settings)) error {
	s.mu.Lock()
	updated := s.settings
	apply(&updated)
	s.settings = updated
	err := s.persistLocked()
	s.mu.Unlock()

	s.bus.Publish(domain.NewSettingsChangedEvent(updated))
	return err
}

// ResetToDefaults restores and persists the compiled-in defaults.
func (s *SettingsService) ResetToDefaults() error {
	return s.Save(domain.DefaultSettings())
}

// persistLocked writes the current settings through to storage.
// Caller holds s.mu.
func (s *SettingsService) persistLocked() error {
	data, err := json.Marshal(s.settings)
	if err != nil {
		return domain.NewStorageError("write", settingsKey, err)
	}
	if err := s.store.SetItem(settingsKey, string(data)); err != nil {
		s.logger.Warn("failed to persist settings", slog.Any("error", err))
		return domain.NewStorageError("write", settingsKey, err)
	}
	return nil
}

// OnChange registers a listener invoked with the full settings after every
// save. Returns the unsubscribe function.
func (s *SettingsService) OnChange(listener func(settings domain.Settings)) (unsubscribe func()) {
	id := s.bus.Subscribe(domain.EventSettingsChanged, func(event domain.Event) {
		listener(event.(domain.SettingsChangedEvent).Settings)
	})
	return func() { s.bus.Unsubscribe(id) }
}
