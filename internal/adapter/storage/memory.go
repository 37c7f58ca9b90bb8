// Package storage provides KeyValueStore implementations.
// The in-memory store backs tests; the fyne store backs the real app.
package storage

import (
	"errors"
	"sync"

	"github.com/mohamadomran/Oul/internal/ports"
)

// ErrInjectedFailure is returned by a MemoryStore configured to fail.
var ErrInjectedFailure = errors.New("injected storage failure")

// MemoryStore is an in-memory KeyValueStore.
//
// It survives across service instances constructed over it, which lets tests
// simulate an app restart, and it can be switched into failing mode to
// exercise persistence error paths.
//
// Thread-safe.
type MemoryStore struct {
	mu         sync.RWMutex
	items      map[string]string
	failReads  bool
	failWrites bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]string)}
}

// SetFailReads makes every subsequent GetItem fail (for testing).
func (s *MemoryStore) SetFailReads(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = fail
}

// SetFailWrites makes every subsequent SetItem/RemoveItem fail (for testing).
func (s *MemoryStore) SetFailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrites = fail
}

// GetItem returns the value stored under key.
func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failReads {
		return "", false, ErrInjectedFailure
	}

	value, ok := s.items[key]
	return value, ok, nil
}

// SetItem stores value under key.
func (s *MemoryStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return ErrInjectedFailure
	}

	s.items[key] = value
	return nil
}

// RemoveItem deletes key.
func (s *MemoryStore) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrites {
		return ErrInjectedFailure
	}

	delete(s.items, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)
