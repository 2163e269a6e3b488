package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopadmin/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string, aggID int64) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Post", aggID)}
}

type testHandler struct {
	eventTypes []string
	err        error
	panics     bool

	mu      sync.Mutex
	handled []shared.DomainEvent
}

func newTestHandler(eventTypes ...string) *testHandler {
	return &testHandler{eventTypes: eventTypes}
}

func (h *testHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.mu.Lock()
	h.handled = append(h.handled, event)
	h.mu.Unlock()
	if h.panics {
		panic("boom")
	}
	return h.err
}

func (h *testHandler) EventTypes() []string { return h.eventTypes }

func (h *testHandler) getHandled() []shared.DomainEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]shared.DomainEvent(nil), h.handled...)
}

func TestInMemoryEventBus_Publish(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("blog.post.changed")
	bus.Subscribe(handler)

	event := newTestEvent("blog.post.changed", 1)
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, handler.getHandled(), 1)
	assert.Equal(t, event, handler.getHandled()[0])
}

func TestInMemoryEventBus_Publish_MultipleEventsAndHandlers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	first := newTestHandler()
	second := newTestHandler()
	bus.Subscribe(first, "a")
	bus.Subscribe(second, "a", "b")

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("a", 1), newTestEvent("b", 2), newTestEvent("c", 3)))

	assert.Len(t, first.getHandled(), 1)
	assert.Len(t, second.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_WildcardHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	wildcard := newTestHandler()
	bus.Subscribe(wildcard)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("x", 1), newTestEvent("y", 2)))
	assert.Len(t, wildcard.getHandled(), 2)
}

func TestInMemoryEventBus_Publish_FailuresAreIsolated(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	bus := NewInMemoryEventBus(zap.New(core))

	failing := newTestHandler("a")
	failing.err = errors.New("cache down")
	panicking := newTestHandler("a")
	panicking.panics = true
	healthy := newTestHandler("a")
	bus.Subscribe(failing)
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("a", 9))

	require.NoError(t, err)
	assert.Len(t, healthy.getHandled(), 1)
	entries := recorded.FilterMessage("handler failed to process event").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(9), entries[0].ContextMap()["aggregate_id"])
	assert.Contains(t, entries[1].ContextMap()["error"], "panicked")
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := newTestHandler("a", "b")
	wildcard := newTestHandler()
	bus.Subscribe(handler)
	bus.Subscribe(wildcard)
	assert.Equal(t, 2, bus.registry.Len())

	bus.Unsubscribe(handler)
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("a", 1)))

	assert.Empty(t, handler.getHandled())
	assert.Len(t, wildcard.getHandled(), 1)
	assert.Equal(t, 1, bus.registry.Len())
	assert.Equal(t, []shared.EventHandler{wildcard}, bus.registry.GetHandlers("b"))
}

func TestInMemoryEventBus_StartStop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	ctx := context.Background()

	assert.False(t, bus.Running())
	require.NoError(t, bus.Start(ctx))
	assert.True(t, bus.Running())
	require.NoError(t, bus.Stop(ctx))
	assert.False(t, bus.Running())
}
