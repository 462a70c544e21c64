package ordering

import (
	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced = "OrderPlaced"
)

// OrderPlacedEvent is published when a basket becomes a new order. It
// carries the affected shop ids so the notifier can reach each supplier.
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	UserID    uuid.UUID   `json:"user_id"`
	ContactID uuid.UUID   `json:"contact_id"`
	ShopIDs   []uuid.UUID `json:"shop_ids"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	var contactID uuid.UUID
	if order.ContactID != nil {
		contactID = *order.ContactID
	}
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		UserID:          order.UserID,
		ContactID:       contactID,
		ShopIDs:         order.ShopIDs(),
	}
}
