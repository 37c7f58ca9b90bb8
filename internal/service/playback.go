package service

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mohamadomran/Oul/internal/catalog"
	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
)

// DefaultSoundCacheSize bounds the number of loaded sounds kept warm.
const DefaultSoundCacheSize = 32

// PlaybackService is the audio playback engine. It owns the single "current"
// sound: starting any phrase first force-stops whatever was playing, so at
// most one sound is ever audible. Loaded handles live in an engine-owned LRU
// cache whose eviction hook releases the platform resource and, when the
// evicted entry is the current sound, clears the engine's reference to it —
// the cache and the engine can never disagree about a handle's liveness.
//
// State transitions and audio errors are broadcast on the event bus;
// OnPlaybackStateChange and OnError wrap the bus for callers that want the
// plain listener form. Events are published with the engine mutex held, so
// handlers must not call back into the engine synchronously (IsPlaying is
// safe: it reads an atomic).
//
// Thread-safe. Overlapping Play calls are not queued; the last one wins, and
// it always stops its predecessor first.
type PlaybackService struct {
	logger  *slog.Logger
	catalog *catalog.Catalog
	player  ports.SoundPlayer
	bus     ports.EventBus

	mu               sync.Mutex
	cache            *SoundCache
	current          domain.SoundHandle
	currentCategory  domain.Category
	currentPhraseID  string
	volume           float64
	// generation invalidates completion callbacks of superseded plays
	generation uint64

	playing atomic.Bool
}

// NewPlaybackService creates the playback engine. cacheSize bounds the sound
// cache; values below 1 fall back to DefaultSoundCacheSize.
func NewPlaybackService(
	logger *slog.Logger,
	cat *catalog.Catalog,
	player ports.SoundPlayer,
	bus ports.EventBus,
	cacheSize int,
) (*PlaybackService, error) {
	if cacheSize < 1 {
		cacheSize = DefaultSoundCacheSize
	}

	s := &PlaybackService{
		logger:  logger,
		catalog: cat,
		player:  player,
		bus:     bus,
		volume:  1.0,
	}

	cache, err := NewSoundCache(cacheSize, s.releaseEvicted)
	if err != nil {
		return nil, fmt.Errorf("create sound cache: %w", err)
	}
	s.cache = cache

	logger.Debug("playback service initialized", slog.Int("cache_size", cacheSize))
	return s, nil
}

// releaseEvicted frees a handle leaving the cache. Runs with s.mu held (the
// cache is only touched under the engine mutex). When the evicted entry is
// the currently playing sound the engine's reference is cleared too, which is
// the coordination the two owners need to avoid a dangling handle.
func (s *PlaybackService) releaseEvicted(key string, handle domain.SoundHandle) {
	if handle == s.current {
		s.logger.Debug("current sound evicted from cache", slog.String("key", key))
		s.current = domain.InvalidSoundHandle
		s.generation++
		if s.playing.Load() {
			s.setPlayingLocked(false)
		}
	}

	if err := s.player.Release(handle); err != nil {
		s.logger.Warn("failed to release evicted sound",
			slog.String("key", key),
			slog.Any("error", err))
	}
}

// Play resolves and plays a catalog phrase, stopping any current sound first.
//
// A catalog miss returns domain.ErrPhraseNotFound. A platform open failure is
// returned and also emitted as a load-kind AudioErrorEvent. Failures the
// platform reports after playback started arrive only on the error channel.
func (s *PlaybackService) Play(category domain.Category, phraseID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Last call wins: whatever was playing or loading is force-stopped before
	// anything else happens.
	s.stopLocked()

	phrase, ok := s.catalog.Phrase(category, phraseID)
	if !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrPhraseNotFound, category, phraseID)
	}

	key := catalog.ResolveAudioPath(phrase.AudioFile)

	handle, cached := s.cache.Get(key)
	if !cached {
		var err error
		handle, err = s.player.Open(key)
		if err != nil {
			audioErr := domain.NewAudioError(domain.AudioErrorLoad, category, phraseID, key, err)
			s.logger.Warn("failed to open sound", slog.String("path", key), slog.Any("error", err))
			s.bus.Publish(domain.NewAudioErrorEvent(audioErr))
			return audioErr
		}
		s.cache.Set(key, handle)
	}

	if err := s.player.SetVolume(handle, s.volume); err != nil {
		s.logger.Warn("failed to set volume", slog.Any("error", err))
	}

	s.current = handle
	s.currentCategory = category
	s.currentPhraseID = phraseID
	s.generation++
	generation := s.generation

	s.setPlayingLocked(true)

	err := s.player.Play(handle, func(success bool) {
		s.handleCompletion(generation, success)
	})
	if err != nil {
		audioErr := domain.NewAudioError(domain.AudioErrorPlayback, category, phraseID, key, err)
		s.current = domain.InvalidSoundHandle
		s.setPlayingLocked(false)
		s.bus.Publish(domain.NewAudioErrorEvent(audioErr))
		return audioErr
	}

	return nil
}

// handleCompletion is invoked by the platform when playback ends naturally or
// fails mid-stream. Completions of superseded plays carry a stale generation
// and are ignored.
func (s *PlaybackService) handleCompletion(generation uint64, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return
	}

	category, phraseID := s.currentCategory, s.currentPhraseID
	s.current = domain.InvalidSoundHandle
	s.setPlayingLocked(false)

	if !success {
		audioErr := domain.NewAudioError(domain.AudioErrorPlayback, category, phraseID, "", domain.ErrPlaybackFailed)
		s.logger.Warn("playback failed", slog.String("phrase", string(category)+"/"+phraseID))
		s.bus.Publish(domain.NewAudioErrorEvent(audioErr))
	}
}

// Stop halts the current sound. No-op when idle.
func (s *PlaybackService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

// stopLocked force-transitions to idle. Caller must hold s.mu.
// The handle stays loaded in the cache for reuse; only playback stops.
func (s *PlaybackService) stopLocked() {
	if s.current != domain.InvalidSoundHandle {
		if err := s.player.Stop(s.current); err != nil {
			s.logger.Warn("failed to stop current sound", slog.Any("error", err))
		}
		s.current = domain.InvalidSoundHandle
	}

	// Invalidate any pending completion callback.
	s.generation++

	if s.playing.Load() {
		s.setPlayingLocked(false)
	}
}

// setPlayingLocked flips the playing flag and broadcasts the transition.
// Caller must hold s.mu.
func (s *PlaybackService) setPlayingLocked(playing bool) {
	s.playing.Store(playing)
	s.bus.Publish(domain.NewPlaybackStateEvent(playing, s.currentCategory, s.currentPhraseID))
}

// IsPlaying reports whether a sound is currently audible.
// Safe to call from event handlers.
func (s *PlaybackService) IsPlaying() bool {
	return s.playing.Load()
}

// SetVolume sets the engine volume (0.0 to 1.0), applied to the current sound
// immediately and to every sound started afterwards.
func (s *PlaybackService) SetVolume(volume float64) error {
	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = volume
	if s.current != domain.InvalidSoundHandle {
		return s.player.SetVolume(s.current, volume)
	}
	return nil
}

// Preload warms the cache with every phrase of a category so first taps play
// without a load pause. Per-file failures are logged; the first one is
// returned after the remaining files were still attempted.
func (s *PlaybackService) Preload(category domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, phrase := range s.catalog.PhrasesByCategory(category) {
		key := catalog.ResolveAudioPath(phrase.AudioFile)
		if s.cache.Has(key) {
			continue
		}

		handle, err := s.player.Open(key)
		if err != nil {
			s.logger.Warn("failed to preload sound",
				slog.String("path", key),
				slog.Any("error", err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.cache.Set(key, handle)
	}

	return firstErr
}

// ReleaseAll stops playback and releases every cached sound. Idempotent.
func (s *PlaybackService) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
	s.cache.Clear()
}

// CacheSize returns the number of loaded sounds held in the cache.
func (s *PlaybackService) CacheSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// OnPlaybackStateChange registers a listener for playing/idle transitions and
// returns its unsubscribe function. Transitions are delivered synchronously
// in registration order; a panicking listener is isolated by the bus.
func (s *PlaybackService) OnPlaybackStateChange(listener func(playing bool)) (unsubscribe func()) {
	id := s.bus.Subscribe(domain.EventPlaybackState, func(event domain.Event) {
		listener(event.(domain.PlaybackStateEvent).Playing)
	})
	return func() { s.bus.Unsubscribe(id) }
}

// OnError registers a listener for audio errors and returns its unsubscribe
// function.
func (s *PlaybackService) OnError(listener func(err *domain.AudioError)) (unsubscribe func()) {
	id := s.bus.Subscribe(domain.EventAudioError, func(event domain.Event) {
		listener(event.(domain.AudioErrorEvent).Err)
	})
	return func() { s.bus.Unsubscribe(id) }
}

// Shutdown stops playback and drops all cached sounds.
func (s *PlaybackService) Shutdown() {
	s.ReleaseAll()
	s.logger.Debug("playback service shut down")
}
