package storage

import (
	"sync"

	"fyne.io/fyne/v2"

	"github.com/mohamadomran/Oul/internal/ports"
)

// FyneStore implements ports.KeyValueStore on top of Fyne preferences, the
// same persistence mechanism the rest of the app's platform layer uses.
//
// Fyne preferences cannot distinguish a missing key from an empty string, so
// an empty value reads back as absent. Every value this app stores is a
// non-empty JSON document, which keeps that limitation harmless.
//
// Thread-safe.
type FyneStore struct {
	prefs fyne.Preferences
	mu    sync.RWMutex
}

// NewFyneStore wraps the given preferences, typically
// fyne.CurrentApp().Preferences().
func NewFyneStore(prefs fyne.Preferences) *FyneStore {
	return &FyneStore{prefs: prefs}
}

// GetItem returns the value stored under key.
func (s *FyneStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value := s.prefs.String(key)
	return value, value != "", nil
}

// SetItem stores value under key.
func (s *FyneStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.SetString(key, value)
	return nil
}

// RemoveItem deletes key.
func (s *FyneStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs.RemoveValue(key)
	return nil
}

var _ ports.KeyValueStore = (*FyneStore)(nil)
