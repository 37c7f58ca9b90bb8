// Package ports defines the KeyValueStore interface for persistence abstraction.
package ports

// KeyValueStore is the persistence primitive behind the favorites, settings
// and custom phrase stores. Values are JSON-encoded strings; each logical key
// has exactly one writer (the store that owns it).
//
// Thread-safety: implementations must be thread-safe.
type KeyValueStore interface {
	// GetItem returns the value stored under key. ok is false when the key
	// has never been written; err reports an actual storage failure.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing an absent key is a no-op.
	RemoveItem(key string) error
}
