package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of an order. A basket is a
// buyer's draft order; placing it moves it to new. The later states are
// driven by shop-side fulfilment.
type OrderStatus string

const (
	OrderStatusBasket    OrderStatus = "basket"
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusAssembled OrderStatus = "assembled"
	OrderStatusSent      OrderStatus = "sent"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCanceled  OrderStatus = "canceled"
)

// IsValid returns true for a known status
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusBasket, OrderStatusNew, OrderStatusConfirmed,
		OrderStatusAssembled, OrderStatusSent, OrderStatusDelivered, OrderStatusCanceled:
		return true
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCanceled
}

// CanTransitionTo checks if the status can move to the target status.
// Canceled is reachable from any non-terminal state.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCanceled {
		return !s.IsTerminal()
	}

	switch s {
	case OrderStatusBasket:
		return target == OrderStatusNew
	case OrderStatusNew:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusAssembled
	case OrderStatusAssembled:
		return target == OrderStatusSent
	case OrderStatusSent:
		return target == OrderStatusDelivered
	default:
		return false
	}
}

// Order is the aggregate root for the basket and order lifecycle. Each user
// has at most one order in basket status at a time, enforced by a partial
// unique index on (user_id) where status = 'basket'.
type Order struct {
	shared.BaseAggregateRoot
	UserID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Status    OrderStatus `gorm:"type:varchar(20);not null;default:'basket';index"`
	ContactID *uuid.UUID  `gorm:"type:uuid"`
	Lines     []OrderLine `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderLine is one (listing, quantity) entry of an order, unique per
// (order, listing)
type OrderLine struct {
	shared.BaseEntity
	OrderID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_order_line_listing,priority:1;index"`
	ListingID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_order_line_listing,priority:2"`
	Quantity  int              `gorm:"not null"`
	Listing   *catalog.Listing `gorm:"foreignKey:ListingID"`
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// NewBasket creates a new draft order for the user
func NewBasket(userID uuid.UUID) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            OrderStatusBasket,
		Lines:             make([]OrderLine, 0),
	}, nil
}

// IsBasket returns true while the order is still a draft
func (o *Order) IsBasket() bool {
	return o.Status == OrderStatusBasket
}

// BelongsTo returns true if the order is owned by the given user
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}

// AddLine adds a listing to the basket. Re-adding a listing already present
// is a conflict, not a silent merge.
func (o *Order) AddLine(listingID uuid.UUID, quantity int) error {
	if !o.IsBasket() {
		return shared.NewDomainError("NOT_A_BASKET", "Lines can only be added to a basket order")
	}
	if listingID == uuid.Nil {
		return shared.NewDomainError("INVALID_LISTING", "Listing ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for _, line := range o.Lines {
		if line.ListingID == listingID {
			return shared.NewDomainError("DUPLICATE_LINE", "Listing is already in the basket")
		}
	}

	o.Lines = append(o.Lines, OrderLine{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ListingID:  listingID,
		Quantity:   quantity,
	})
	o.UpdatedAt = time.Now()

	return nil
}

// UpdateLineQuantity sets the quantity of an existing line by line id.
// Returns false when the line is not part of this order; callers bulk
// updating quantities skip missing ids silently.
func (o *Order) UpdateLineQuantity(lineID uuid.UUID, quantity int) (bool, error) {
	if !o.IsBasket() {
		return false, shared.NewDomainError("NOT_A_BASKET", "Lines can only be changed on a basket order")
	}
	if quantity <= 0 {
		return false, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			o.Lines[i].Quantity = quantity
			o.Lines[i].UpdatedAt = time.Now()
			o.UpdatedAt = time.Now()
			return true, nil
		}
	}

	return false, nil
}

// RemoveLines deletes lines by id. Unknown ids are ignored; the count of
// removed lines is returned.
func (o *Order) RemoveLines(lineIDs []uuid.UUID) (int, error) {
	if !o.IsBasket() {
		return 0, shared.NewDomainError("NOT_A_BASKET", "Lines can only be removed from a basket order")
	}

	remove := make(map[uuid.UUID]bool, len(lineIDs))
	for _, id := range lineIDs {
		remove[id] = true
	}

	kept := make([]OrderLine, 0, len(o.Lines))
	removed := 0
	for _, line := range o.Lines {
		if remove[line.ID] {
			removed++
			continue
		}
		kept = append(kept, line)
	}

	if removed > 0 {
		o.Lines = kept
		o.UpdatedAt = time.Now()
	}

	return removed, nil
}

// Place transitions the basket to a new order with the given shipping
// contact. The basket must be non-empty; ownership of the contact is
// checked by the application service before calling.
func (o *Order) Place(contactID uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusNew) {
		return shared.NewDomainError("INVALID_STATE", "Only a basket order can be placed")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("EMPTY_BASKET", "Cannot place an order with no lines")
	}
	if contactID == uuid.Nil {
		return shared.NewDomainError("INVALID_CONTACT", "A shipping contact is required")
	}

	o.Status = OrderStatusNew
	o.ContactID = &contactID
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderPlacedEvent(o))

	return nil
}

// TransitionTo moves the order along the fulfilment lifecycle
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}

	o.Status = target
	o.UpdatedAt = time.Now()

	return nil
}

// Cancel moves the order to the terminal canceled state
func (o *Order) Cancel() error {
	return o.TransitionTo(OrderStatusCanceled)
}

// Total computes the order total from current listing prices. Totals are
// deliberately not snapshotted at placement time: they follow price changes
// until the data says otherwise. Lines whose listing is not loaded
// contribute nothing.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		if line.Listing == nil {
			continue
		}
		total = total.Add(line.Listing.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// ShopIDs returns the distinct shops whose listings appear in the order
func (o *Order) ShopIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	ids := make([]uuid.UUID, 0)
	for _, line := range o.Lines {
		if line.Listing == nil || seen[line.Listing.ShopID] {
			continue
		}
		seen[line.Listing.ShopID] = true
		ids = append(ids, line.Listing.ShopID)
	}
	return ids
}
