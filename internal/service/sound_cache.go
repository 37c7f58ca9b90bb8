// Package service provides the business logic of the Oul application: the
// playback engine and the favorites, settings and custom phrase stores.
package service

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mohamadomran/Oul/internal/domain"
)

// SoundCache maps resolved audio paths to loaded sound handles, bounded by an
// LRU policy. Evicted and deleted entries are handed to the onRelease hook,
// which frees the platform resource.
//
// The cache has exactly one owner, the playback engine, and every method is
// invoked with the engine's mutex held. The onRelease hook therefore runs
// under that same mutex and may touch engine state directly; the cache itself
// carries no locking.
type SoundCache struct {
	entries   *lru.Cache[string, domain.SoundHandle]
	onRelease func(key string, handle domain.SoundHandle)
}

// NewSoundCache creates a cache holding at most capacity handles.
func NewSoundCache(capacity int, onRelease func(key string, handle domain.SoundHandle)) (*SoundCache, error) {
	c := &SoundCache{onRelease: onRelease}

	entries, err := lru.NewWithEvict[string, domain.SoundHandle](capacity, func(key string, handle domain.SoundHandle) {
		if c.onRelease != nil {
			c.onRelease(key, handle)
		}
	})
	if err != nil {
		return nil, err
	}

	c.entries = entries
	return c, nil
}

// Get returns the handle cached under key and marks it recently used.
func (c *SoundCache) Get(key string) (domain.SoundHandle, bool) {
	return c.entries.Get(key)
}

// Set stores handle under key. An existing entry is overwritten silently
// without release: the caller must release the old handle first, or leak it.
// Inserting over a full cache evicts (and releases) the least recently used
// entry.
func (c *SoundCache) Set(key string, handle domain.SoundHandle) {
	c.entries.Add(key, handle)
}

// Has reports whether key is cached, without bumping recency.
func (c *SoundCache) Has(key string) bool {
	return c.entries.Contains(key)
}

// Delete releases the entry under key and reports whether one existed.
func (c *SoundCache) Delete(key string) bool {
	return c.entries.Remove(key)
}

// Clear releases every entry and empties the cache. Idempotent.
func (c *SoundCache) Clear() {
	c.entries.Purge()
}

// Len returns the number of cached handles.
func (c *SoundCache) Len() int {
	return c.entries.Len()
}
