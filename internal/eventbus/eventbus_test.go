package eventbus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"findbar/internal/domain"
)

func TestPublishDispatchesSynchronously(t *testing.T) {
	t.Parallel()
	bus := New()

	var got []DomainEvent
	bus.Subscribe(EventSearchRequested, func(e DomainEvent) {
		got = append(got, e)
	})

	bus.Publish(SearchRequestedEvent{Backward: true})

	// No synchronization needed: dispatch happens on the caller's goroutine
	require.Len(t, got, 1)
	require.Equal(t, SearchRequestedEvent{Backward: true}, got[0])
}

func TestPublishOnlyReachesMatchingType(t *testing.T) {
	t.Parallel()
	bus := New()

	var patterns, searches int
	bus.Subscribe(EventPatternChanged, func(DomainEvent) { patterns++ })
	bus.Subscribe(EventSearchRequested, func(DomainEvent) { searches++ })

	bus.Publish(PatternChangedEvent{Pattern: "abc", Active: true})
	bus.Publish(PatternChangedEvent{})

	require.Equal(t, 2, patterns)
	require.Zero(t, searches)
}

func TestHandlersRunInSubscriptionOrder(t *testing.T) {
	t.Parallel()
	bus := New()

	var order []string
	bus.Subscribe(EventHistoryChanged, func(DomainEvent) { order = append(order, "first") })
	bus.Subscribe(EventHistoryChanged, func(DomainEvent) { order = append(order, "second") })

	bus.Publish(HistoryChangedEvent{})

	require.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()
	bus := New()

	var calls int
	unsub := bus.Subscribe(EventWrapAroundChanged, func(DomainEvent) { calls++ })
	bus.Publish(WrapAroundChangedEvent{Enabled: true})
	require.Equal(t, 1, calls)

	unsub()
	bus.Publish(WrapAroundChangedEvent{Enabled: false})
	require.Equal(t, 1, calls)
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	t.Parallel()
	bus := New()

	var a, b int
	unsubA := bus.Subscribe(EventError, func(DomainEvent) { a++ })
	bus.Subscribe(EventError, func(DomainEvent) { b++ })

	unsubA()
	bus.Publish(domain.ErrorEvent{Message: "boom"})

	require.Zero(t, a)
	require.Equal(t, 1, b)
}
