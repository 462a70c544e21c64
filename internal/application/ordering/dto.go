package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/retailorders/backend/internal/domain/ordering"
)

// AddLineInput is one listing to add to the basket
type AddLineInput struct {
	ListingID uuid.UUID
	Quantity  int
}

// AddLineResult reports the outcome for one requested line. Failures carry
// the error code and message; the rest of the batch is unaffected.
type AddLineResult struct {
	ListingID uuid.UUID `json:"listing_id"`
	LineID    uuid.UUID `json:"line_id,omitempty"`
	Added     bool      `json:"added"`
	Error     string    `json:"error,omitempty"`
}

// LineQuantityInput sets the quantity of one basket line
type LineQuantityInput struct {
	LineID   uuid.UUID
	Quantity int
}

// PlaceOrderInput identifies the basket to place and the shipping contact
type PlaceOrderInput struct {
	UserID    uuid.UUID
	OrderID   uuid.UUID
	ContactID uuid.UUID
}

// LineView is one order line with its listing detail
type LineView struct {
	ID        uuid.UUID       `json:"id"`
	ListingID uuid.UUID       `json:"listing_id"`
	Product   string          `json:"product"`
	Shop      string          `json:"shop"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderView is the transport shape of an order or basket. The total is
// computed from current listing prices at read time.
type OrderView struct {
	ID        uuid.UUID            `json:"id"`
	Status    ordering.OrderStatus `json:"status"`
	ContactID *uuid.UUID           `json:"contact_id,omitempty"`
	Lines     []LineView           `json:"lines"`
	Total     decimal.Decimal      `json:"total"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

func lineViewFrom(line ordering.OrderLine) LineView {
	view := LineView{
		ID:        line.ID,
		ListingID: line.ListingID,
		Quantity:  line.Quantity,
	}
	if line.Listing != nil {
		view.Price = line.Listing.Price
		view.LineTotal = line.Listing.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		if line.Listing.Product != nil {
			view.Product = line.Listing.Product.Name
		}
		if line.Listing.Shop != nil {
			view.Shop = line.Listing.Shop.Name
		}
	}
	return view
}

func orderViewFrom(order *ordering.Order) OrderView {
	return OrderView{
		ID:        order.ID,
		Status:    order.Status,
		ContactID: order.ContactID,
		Lines:     lo.Map(order.Lines, func(line ordering.OrderLine, _ int) LineView { return lineViewFrom(line) }),
		Total:     order.Total(),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}
