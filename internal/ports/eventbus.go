// Package ports defines the EventBus interface for event-driven communication.
// The event bus replaces per-store listener sets and enables loose coupling
// between the stores and their observers.
package ports

import (
	"github.com/mohamadomran/Oul/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
//
// The bus decouples event producers (the stores) from consumers (UI, logging).
// Multiple subscribers can listen to the same event type, and subscribers do
// not know about publishers.
//
// Thread-safety: implementations must be thread-safe as events may be
// published and subscribed from multiple goroutines simultaneously.
//
// Example usage:
//
//	// In the engine: publish a state transition
//	bus.Publish(domain.NewPlaybackStateEvent(true, cat, id))
//
//	// In a UI presenter: observe transitions
//	subID := bus.Subscribe(domain.EventPlaybackState, func(event domain.Event) {
//	    e := event.(domain.PlaybackStateEvent)
//	    ui.SetPlayState(e.Playing)
//	})
//
//	// Later
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to all subscribers of its type, synchronously
	// and in subscription order. A panicking handler is isolated and logged;
	// it never prevents delivery to the remaining handlers.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// The same handler can be registered multiple times, resulting in
	// multiple calls. Returns a SubscriptionID for Unsubscribe.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler.
	// Unknown or already-removed IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// SubscribeAll registers a handler that receives every event regardless
	// of type. Useful for logging and debugging.
	SubscribeAll(handler domain.EventHandler) domain.SubscriptionID

	// HasSubscribers reports whether anything listens for the given type.
	HasSubscribers(eventType domain.EventType) bool

	// Close shuts down the bus and drops all subscriptions.
	Close() error
}
