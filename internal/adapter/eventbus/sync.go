// Package eventbus provides the synchronous EventBus implementation shared by
// all stores. It replaces the per-store listener sets of the original design
// with one broadcast mechanism.
package eventbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mohamadomran/Oul/internal/domain"
	"github.com/mohamadomran/Oul/internal/ports"
)

// SyncEventBus delivers events to handlers synchronously, in subscription
// order. A panicking handler is recovered and logged so one bad subscriber
// cannot break the others.
//
// Thread-safe: multiple goroutines may publish and (un)subscribe concurrently.
// Handlers run on the publisher's goroutine, so they must return quickly.
type SyncEventBus struct {
	logger *slog.Logger

	mu             sync.RWMutex
	subscribers    map[domain.EventType][]subscription
	allSubscribers []subscription
	closed         bool

	idCounter uint64
}

type subscription struct {
	id      domain.SubscriptionID
	handler domain.EventHandler
}

// NewSyncEventBus creates a synchronous event bus.
// The logger may be nil; panics are then recovered silently.
func NewSyncEventBus(logger *slog.Logger) *SyncEventBus {
	return &SyncEventBus{
		logger:      logger,
		subscribers: make(map[domain.EventType][]subscription),
	}
}

// Publish delivers event to every subscriber of its type, then to every
// wildcard subscriber. Does nothing on a nil event or a closed bus.
func (bus *SyncEventBus) Publish(event domain.Event) {
	if event == nil {
		return
	}

	bus.mu.RLock()
	if bus.closed {
		bus.mu.RUnlock()
		return
	}

	// Snapshot under the read lock so handlers can subscribe/unsubscribe
	// without deadlocking.
	typed := make([]subscription, len(bus.subscribers[event.Type()]))
	copy(typed, bus.subscribers[event.Type()])
	wildcard := make([]subscription, len(bus.allSubscribers))
	copy(wildcard, bus.allSubscribers)
	bus.mu.RUnlock()

	for _, sub := range typed {
		bus.callHandler(sub.handler, event)
	}
	for _, sub := range wildcard {
		bus.callHandler(sub.handler, event)
	}
}

func (bus *SyncEventBus) callHandler(handler domain.EventHandler, event domain.Event) {
	defer func() {
		if r := recover(); r != nil {
			if bus.logger != nil {
				bus.logger.Error("event handler panicked",
					slog.Any("panic", r),
					slog.String("event_type", string(event.Type())))
			}
		}
	}()

	handler(event)
}

// Subscribe registers a handler for one event type and returns its
// subscription ID.
func (bus *SyncEventBus) Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-%d", atomic.AddUint64(&bus.idCounter, 1)))
	bus.subscribers[eventType] = append(bus.subscribers[eventType], subscription{id: id, handler: handler})
	return id
}

// SubscribeAll registers a handler that receives every event.
func (bus *SyncEventBus) SubscribeAll(handler domain.EventHandler) domain.SubscriptionID {
	if handler == nil {
		panic("event handler cannot be nil")
	}

	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		panic("cannot subscribe to closed event bus")
	}

	id := domain.SubscriptionID(fmt.Sprintf("sub-all-%d", atomic.AddUint64(&bus.idCounter, 1)))
	bus.allSubscribers = append(bus.allSubscribers, subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a subscription. Unknown IDs are a no-op.
func (bus *SyncEventBus) Unsubscribe(id domain.SubscriptionID) {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	for eventType, subs := range bus.subscribers {
		for i, sub := range subs {
			if sub.id == id {
				bus.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}

	for i, sub := range bus.allSubscribers {
		if sub.id == id {
			bus.allSubscribers = append(bus.allSubscribers[:i], bus.allSubscribers[i+1:]...)
			return
		}
	}
}

// HasSubscribers reports whether the given type has any listener, counting
// wildcard subscribers.
func (bus *SyncEventBus) HasSubscribers(eventType domain.EventType) bool {
	bus.mu.RLock()
	defer bus.mu.RUnlock()
	return len(bus.subscribers[eventType]) > 0 || len(bus.allSubscribers) > 0
}

// SubscriberCount returns the total number of active subscriptions.
func (bus *SyncEventBus) SubscriberCount() int {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	count := len(bus.allSubscribers)
	for _, subs := range bus.subscribers {
		count += len(subs)
	}
	return count
}

// Close shuts down the bus and drops every subscription.
func (bus *SyncEventBus) Close() error {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	if bus.closed {
		return fmt.Errorf("event bus already closed")
	}

	bus.closed = true
	bus.subscribers = make(map[domain.EventType][]subscription)
	bus.allSubscribers = nil
	return nil
}

var _ ports.EventBus = (*SyncEventBus)(nil)
