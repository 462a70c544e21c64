package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/ordering"
	"github.com/retailorders/backend/internal/domain/shared"
)

// OrderService handles order placement and the buyer/shop order listings
type OrderService struct {
	orders   ordering.OrderRepository
	contacts identity.ContactRepository
	shops    catalog.ShopRepository
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orders ordering.OrderRepository,
	contacts identity.ContactRepository,
	shops catalog.ShopRepository,
	events shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		contacts: contacts,
		shops:    shops,
		events:   events,
		logger:   logger,
	}
}

// Place turns the caller's basket into a new order against one of their
// shipping contacts
func (s *OrderService) Place(ctx context.Context, input PlaceOrderInput) (*OrderView, error) {
	order, err := s.orders.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !order.BelongsTo(input.UserID) {
		return nil, shared.ErrForbidden
	}

	contact, err := s.contacts.FindByID(ctx, input.ContactID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CONTACT", "Shipping contact not found")
		}
		return nil, err
	}
	if !contact.BelongsTo(input.UserID) {
		return nil, shared.NewDomainError("INVALID_CONTACT", "Shipping contact not found")
	}

	if err := order.Place(contact.ID); err != nil {
		return nil, err
	}

	if err := s.orders.Save(ctx, order); err != nil {
		s.logger.Error("failed to save placed order",
			zap.String("order_id", order.ID.String()), zap.Error(err))
		return nil, err
	}

	if err := s.events.Publish(ctx, order.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.String("order_id", order.ID.String()), zap.Error(err))
	}
	order.ClearDomainEvents()

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.Int("lines", len(order.Lines)),
	)

	view := orderViewFrom(order)
	return &view, nil
}

// GetOrder returns one of the caller's orders. Other users' orders are
// indistinguishable from missing ones.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderView, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}

	view := orderViewFrom(order)
	return &view, nil
}

// ListOrders returns the caller's placed orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]OrderView, int64, error) {
	orders, total, err := s.orders.FindByUser(ctx, userID, filter)
	if err != nil {
		s.logger.Error("failed to list orders", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, 0, err
	}

	views := lo.Map(orders, func(order *ordering.Order, _ int) OrderView { return orderViewFrom(order) })
	return views, total, nil
}

// ListPartnerOrders returns placed orders containing listings of the shop
// owned by the calling user
func (s *OrderService) ListPartnerOrders(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]OrderView, int64, error) {
	shop, err := s.shops.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, 0, shared.NewDomainError("SHOP_NOT_FOUND",
				"No shop is linked to this account yet; import a price list first")
		}
		return nil, 0, err
	}

	orders, total, err := s.orders.FindByShop(ctx, shop.ID, filter)
	if err != nil {
		s.logger.Error("failed to list shop orders", zap.String("shop_id", shop.ID.String()), zap.Error(err))
		return nil, 0, err
	}

	views := lo.Map(orders, func(order *ordering.Order, _ int) OrderView { return orderViewFrom(order) })
	return views, total, nil
}
