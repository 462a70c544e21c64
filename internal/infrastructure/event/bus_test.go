package event

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string { return h.types }

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Test", uuid.New())
	return &e
}

func TestInMemoryEventBus(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribed handler", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{types: []string{"OrderPlaced"}}
		bus.Subscribe(h)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderPlaced")))
		require.NoError(t, bus.Publish(ctx, newTestEvent("UserRegistered")))

		require.Len(t, h.received, 1)
		assert.Equal(t, "OrderPlaced", h.received[0].EventType())
	})

	t.Run("wildcard handler receives everything", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{}
		bus.Subscribe(h)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderPlaced"), newTestEvent("UserRegistered")))
		assert.Len(t, h.received, 2)
	})

	t.Run("explicit event types override the handler's own", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{types: []string{"OrderPlaced"}}
		bus.Subscribe(h, "UserRegistered")

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderPlaced")))
		assert.Empty(t, h.received)

		require.NoError(t, bus.Publish(ctx, newTestEvent("UserRegistered")))
		assert.Len(t, h.received, 1)
	})

	t.Run("failing handler does not block the rest", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		failing := &recordingHandler{types: []string{"OrderPlaced"}, err: errors.New("smtp down")}
		healthy := &recordingHandler{types: []string{"OrderPlaced"}}
		bus.Subscribe(failing)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderPlaced")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("panicking handler is contained", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		panicking := &recordingHandler{types: []string{"OrderPlaced"}, panics: true}
		healthy := &recordingHandler{types: []string{"OrderPlaced"}}
		bus.Subscribe(panicking)
		bus.Subscribe(healthy)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderPlaced")))
		assert.Len(t, healthy.received, 1)
	})

	t.Run("unsubscribed handler stops receiving", func(t *testing.T) {
		bus := NewInMemoryEventBus(zap.NewNop())
		h := &recordingHandler{types: []string{"OrderPlaced"}}
		bus.Subscribe(h)
		bus.Unsubscribe(h)

		require.NoError(t, bus.Publish(ctx, newTestEvent("OrderPlaced")))
		assert.Empty(t, h.received)
	})
}
