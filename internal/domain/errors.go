// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that services can return.
var (
	// ErrPhraseNotFound is returned when a phrase lookup misses.
	ErrPhraseNotFound = errors.New("phrase not found")

	// ErrUnknownCategory is returned for a category outside the bundled set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrInvalidSoundHandle is returned when an invalid sound handle is used.
	ErrInvalidSoundHandle = errors.New("invalid sound handle")

	// ErrInvalidVolume is returned when the volume is out of valid range (0.0-1.0).
	ErrInvalidVolume = errors.New("invalid volume: must be between 0.0 and 1.0")

	// ErrNotInitialized is returned when an operation is attempted on an uninitialized component.
	ErrNotInitialized = errors.New("component not initialized")

	// ErrPlaybackFailed is returned when playback cannot be started.
	ErrPlaybackFailed = errors.New("playback failed")
)

// AudioErrorKind distinguishes the two failure channels of the playback
// engine: open/decode failures (awaitable by the caller) and failures the
// platform reports after playback already started.
type AudioErrorKind string

const (
	// AudioErrorLoad means the platform failed to open or decode a resource.
	AudioErrorLoad AudioErrorKind = "load"

	// AudioErrorPlayback means the platform reported a failure mid-playback.
	AudioErrorPlayback AudioErrorKind = "playback"
)

// AudioError is the structured error delivered on the engine's error channel.
type AudioError struct {
	Kind     AudioErrorKind
	Category Category
	PhraseID string
	Path     string // resolved audio path, if resolution succeeded
	Err      error  // underlying error, if any
}

// Error implements the error interface.
func (e *AudioError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("audio %s error for %s/%s: %v", e.Kind, e.Category, e.PhraseID, e.Err)
	}
	return fmt.Sprintf("audio %s error for %s/%s", e.Kind, e.Category, e.PhraseID)
}

// Unwrap returns the underlying error.
func (e *AudioError) Unwrap() error {
	return e.Err
}

// NewAudioError creates a new AudioError.
func NewAudioError(kind AudioErrorKind, category Category, phraseID, path string, err error) *AudioError {
	return &AudioError{
		Kind:     kind,
		Category: category,
		PhraseID: phraseID,
		Path:     path,
		Err:      err,
	}
}

// StorageError wraps a key/value storage failure with the operation and key
// that failed.
type StorageError struct {
	Op  string // "read", "write" or "remove"
	Key string
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError.
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}
