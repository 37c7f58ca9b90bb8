// Package mock provides a mock implementation of the SoundPlayer interface.
// It simulates playback in memory so the playback engine can be tested
// without an audio device.
package mock

import (
	"fmt"
	"sync"

	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
)

// Player is a mock SoundPlayer.
//
// Playback never completes on its own; tests drive completion explicitly via
// Complete, which makes state transitions deterministic.
//
// Thread-safe.
type Player struct {
	mu         sync.Mutex
	sounds     map[domain.SoundHandle]*mockSound
	nextHandle domain.SoundHandle

	playing    domain.SoundHandle
	onComplete func(success bool)

	// Behavior switches for error scenarios
	failOpen bool
	failPlay bool

	// Bookkeeping inspected by tests
	openCounts map[string]int
	stopCounts map[domain.SoundHandle]int
	released   map[domain.SoundHandle]bool
	closed     bool
}

type mockSound struct {
	path   string
	volume float64
}

// NewPlayer creates a mock sound player.
func NewPlayer() *Player {
	return &Player{
		sounds:     make(map[domain.SoundHandle]*mockSound),
		nextHandle: 1,
		openCounts: make(map[string]int),
		stopCounts: make(map[domain.SoundHandle]int),
		released:   make(map[domain.SoundHandle]bool),
	}
}

// SetFailOpen configures the mock to fail Open calls.
func (p *Player) SetFailOpen(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failOpen = fail
}

// SetFailPlay configures the mock to fail Play calls.
func (p *Player) SetFailPlay(fail bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failPlay = fail
}

// Open loads a fake sound for path.
func (p *Player) Open(path string) (domain.SoundHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return domain.InvalidSoundHandle, domain.ErrNotInitialized
	}
	if p.failOpen {
		return domain.InvalidSoundHandle, fmt.Errorf("mock open failed for %s", path)
	}

	handle := p.nextHandle
	p.nextHandle++
	p.sounds[handle] = &mockSound{path: path, volume: 1.0}
	p.openCounts[path]++
	return handle, nil
}

// Play marks the handle as playing and parks onComplete until the test calls
// Complete or the engine calls Stop.
func (p *Player) Play(handle domain.SoundHandle, onComplete func(success bool)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.sounds[handle]; !ok {
		return domain.ErrInvalidSoundHandle
	}
	if p.failPlay {
		return domain.ErrPlaybackFailed
	}

	p.playing = handle
	p.onComplete = onComplete
	return nil
}

// Stop halts the handle if it is playing. The parked completion callback is
// dropped: a stopped sound never reports completion.
func (p *Player) Stop(handle domain.SoundHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.sounds[handle]; !ok {
		return domain.ErrInvalidSoundHandle
	}

	p.stopCounts[handle]++
	if p.playing == handle {
		p.playing = domain.InvalidSoundHandle
		p.onComplete = nil
	}
	return nil
}

// Release frees the handle, stopping it first if needed.
func (p *Player) Release(handle domain.SoundHandle) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.sounds[handle]; !ok {
		return domain.ErrInvalidSoundHandle
	}

	if p.playing == handle {
		p.playing = domain.InvalidSoundHandle
		p.onComplete = nil
	}
	delete(p.sounds, handle)
	p.released[handle] = true
	return nil
}

// SetVolume records the volume for a handle.
func (p *Player) SetVolume(handle domain.SoundHandle, volume float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	sound, ok := p.sounds[handle]
	if !ok {
		return domain.ErrInvalidSoundHandle
	}
	if volume < 0.0 || volume > 1.0 {
		return domain.ErrInvalidVolume
	}
	sound.volume = volume
	return nil
}

// Close releases every sound.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = domain.InvalidSoundHandle
	p.onComplete = nil
	for handle := range p.sounds {
		p.released[handle] = true
		delete(p.sounds, handle)
	}
	p.closed = true
	return nil
}

// Complete finishes the currently playing sound, invoking its completion
// callback with the given result. No-op when nothing is playing.
func (p *Player) Complete(success bool) {
	p.mu.Lock()
	callback := p.onComplete
	p.playing = domain.InvalidSoundHandle
	p.onComplete = nil
	p.mu.Unlock()

	// Invoke outside the lock, as a real platform callback would.
	if callback != nil {
		callback(success)
	}
}

// Playing returns the handle currently playing, or InvalidSoundHandle.
func (p *Player) Playing() domain.SoundHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// OpenCount returns how many times path was opened.
func (p *Player) OpenCount(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.openCounts[path]
}

// StopCount returns how many times Stop was called for handle.
func (p *Player) StopCount(handle domain.SoundHandle) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopCounts[handle]
}

// Released reports whether handle has been released.
func (p *Player) Released(handle domain.SoundHandle) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.released[handle]
}

// LoadedCount returns the number of currently loaded sounds.
func (p *Player) LoadedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.sounds)
}

// Volume returns the recorded volume for handle.
func (p *Player) Volume(handle domain.SoundHandle) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sound, ok := p.sounds[handle]; ok {
		return sound.volume
	}
	return 0
}

var _ ports.SoundPlayer = (*Player)(nil)
