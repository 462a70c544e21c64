package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// OrderRepository defines the persistence contract for orders
type OrderRepository interface {
	// CurrentBasket returns the user's single basket order, creating it when
	// absent. The partial unique index on (user_id) where status = 'basket'
	// guards the invariant under concurrent first writes; the outcome tells
	// the caller whether a new basket was created.
	CurrentBasket(ctx context.Context, userID uuid.UUID) (*Order, shared.UpsertOutcome, error)

	// FindByID loads an order with its lines and listing detail
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// Save persists the order and reconciles its lines (insert, update,
	// delete) in one transaction with an optimistic version check
	Save(ctx context.Context, order *Order) error

	// FindByUser returns the user's placed orders (status != basket)
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)

	// FindByShop returns placed orders containing at least one of the shop's
	// listings
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)
}
