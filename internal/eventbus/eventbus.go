package eventbus

import (
	"sync"

	"findbar/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventPatternChanged    = domain.EventPatternChanged
	EventSearchRequested   = domain.EventSearchRequested
	EventWrapAroundChanged = domain.EventWrapAroundChanged
	EventHistoryChanged    = domain.EventHistoryChanged
	EventConfigLoaded      = domain.EventConfigLoaded
	EventConfigSaved       = domain.EventConfigSaved
	EventError             = domain.EventError
)

// Re-export domain event types
type PatternChangedEvent = domain.PatternChangedEvent
type SearchRequestedEvent = domain.SearchRequestedEvent
type WrapAroundChangedEvent = domain.WrapAroundChangedEvent
type HistoryChangedEvent = domain.HistoryChangedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// bus is the concrete implementation of EventBus. Dispatch is synchronous:
// every producer and consumer runs on the single UI goroutine, and handlers
// must observe state changes before the next key event is processed.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
	nextID   int
	ids      map[EventType][]int
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]EventHandler),
		ids:      make(map[EventType][]int),
	}
}

// Publish delivers an event to all subscribers, in subscription order,
// on the caller's goroutine.
func (b *bus) Publish(event DomainEvent) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.ids[eventType] = append(b.ids[eventType], id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		ids := b.ids[eventType]
		for i, existing := range ids {
			if existing == id {
				b.handlers[eventType] = append(b.handlers[eventType][:i], b.handlers[eventType][i+1:]...)
				b.ids[eventType] = append(ids[:i], ids[i+1:]...)
				break
			}
		}
	}
}
