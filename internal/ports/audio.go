// Package ports defines interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"github.com/mohamadomran/Oul/internal/domain"
)

// SoundPlayer is the platform audio primitive consumed by the playback engine.
// It owns the raw decoded audio; the engine addresses sounds through opaque
// handles and never touches platform resources directly.
//
// Implementations must be thread-safe.
type SoundPlayer interface {
	// Open loads and decodes the audio resource at path and returns a handle
	// to it. The resource stays loaded until Release is called.
	Open(path string) (domain.SoundHandle, error)

	// Play starts playback of the given handle from the beginning.
	//
	// onComplete is invoked exactly once from an implementation goroutine when
	// playback ends: success=true for natural completion, success=false for a
	// platform-reported failure. Stopping a sound via Stop suppresses its
	// completion callback.
	Play(handle domain.SoundHandle, onComplete func(success bool)) error

	// Stop halts playback of the given handle, if it is playing. The handle
	// stays loaded and can be played again. No-op for a non-playing handle.
	Stop(handle domain.SoundHandle) error

	// Release frees the resources behind a handle. The handle is invalid
	// afterwards. Releasing a playing handle stops it first.
	Release(handle domain.SoundHandle) error

	// SetVolume sets the playback volume (0.0 to 1.0) for a handle.
	SetVolume(handle domain.SoundHandle, volume float64) error

	// Close releases every loaded handle and shuts the player down.
	Close() error
}
