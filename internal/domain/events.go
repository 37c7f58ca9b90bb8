// Package domain defines events for the event-driven architecture.
// Events replace per-store listener sets and enable loose coupling between components.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playback events
	EventPlaybackState EventType = "playback.state"
	EventAudioError    EventType = "playback.error"

	// Store events
	EventFavoritesChanged     EventType = "favorites.changed"
	EventSettingsChanged      EventType = "settings.changed"
	EventCustomPhrasesChanged EventType = "custom_phrases.changed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// PlaybackStateEvent is published on every playing/idle transition of the
// playback engine.
type PlaybackStateEvent struct {
	baseEvent

	// Playing is true while a sound is audible
	Playing bool

	// Category and PhraseID identify the sound that caused the transition
	Category Category
	PhraseID string
}

// Type returns the event type.
func (e PlaybackStateEvent) Type() EventType {
	return EventPlaybackState
}

// NewPlaybackStateEvent creates a new PlaybackStateEvent.
func NewPlaybackStateEvent(playing bool, category Category, phraseID string) PlaybackStateEvent {
	return PlaybackStateEvent{
		baseEvent: newBaseEvent(),
		Playing:   playing,
		Category:  category,
		PhraseID:  phraseID,
	}
}

// AudioErrorEvent is published when the platform fails to load a sound or
// reports a failure mid-playback.
type AudioErrorEvent struct {
	baseEvent
	Err *AudioError
}

// Type returns the event type.
func (e AudioErrorEvent) Type() EventType {
	return EventAudioError
}

// NewAudioErrorEvent creates a new AudioErrorEvent.
func NewAudioErrorEvent(err *AudioError) AudioErrorEvent {
	return AudioErrorEvent{
		baseEvent: newBaseEvent(),
		Err:       err,
	}
}

// FavoritesChangedEvent is published once per successful favorites mutation.
// Listeners re-query the store; the event carries only the new count.
type FavoritesChangedEvent struct {
	baseEvent
	Count int
}

// Type returns the event type.
func (e FavoritesChangedEvent) Type() EventType {
	return EventFavoritesChanged
}

// NewFavoritesChangedEvent creates a new FavoritesChangedEvent.
func NewFavoritesChangedEvent(count int) FavoritesChangedEvent {
	return FavoritesChangedEvent{
		baseEvent: newBaseEvent(),
		Count:     count,
	}
}

// SettingsChangedEvent is published after settings are persisted.
type SettingsChangedEvent struct {
	baseEvent
	Settings Settings
}

// Type returns the event type.
func (e SettingsChangedEvent) Type() EventType {
	return EventSettingsChanged
}

// NewSettingsChangedEvent creates a new SettingsChangedEvent.
func NewSettingsChangedEvent(settings Settings) SettingsChangedEvent {
	return SettingsChangedEvent{
		baseEvent: newBaseEvent(),
		Settings:  settings,
	}
}

// CustomPhrasesChangedEvent is published after the custom phrase set mutates.
type CustomPhrasesChangedEvent struct {
	baseEvent
	Count int
}

// Type returns the event type.
func (e CustomPhrasesChangedEvent) Type() EventType {
	return EventCustomPhrasesChanged
}

// NewCustomPhrasesChangedEvent creates a new CustomPhrasesChangedEvent.
func NewCustomPhrasesChangedEvent(count int) CustomPhrasesChangedEvent {
	return CustomPhrasesChangedEvent{
		baseEvent: newBaseEvent(),
		Count:     count,
	}
}
