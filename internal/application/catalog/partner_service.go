package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// PartnerService manages a shop owner's supplier profile
type PartnerService struct {
	shops  catalog.ShopRepository
	logger *zap.Logger
}

// NewPartnerService creates a new PartnerService
func NewPartnerService(shops catalog.ShopRepository, logger *zap.Logger) *PartnerService {
	return &PartnerService{shops: shops, logger: logger}
}

// GetState returns the order-accepting state of the user's shop
func (s *PartnerService) GetState(ctx context.Context, userID uuid.UUID) (*PartnerStateResult, error) {
	shop, err := s.findOwnShop(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PartnerStateResult{
		ShopID:          shop.ID,
		Name:            shop.Name,
		AcceptingOrders: shop.AcceptingOrders,
	}, nil
}

// SetState flips whether the user's shop accepts orders. Listings of a shop
// that stopped accepting orders disappear from public queries but stay in
// existing baskets and orders.
func (s *PartnerService) SetState(ctx context.Context, userID uuid.UUID, accepting bool) (*PartnerStateResult, error) {
	shop, err := s.findOwnShop(ctx, userID)
	if err != nil {
		return nil, err
	}

	if shop.AcceptingOrders != accepting {
		shop.SetAcceptingOrders(accepting)
		if err := s.shops.Save(ctx, shop); err != nil {
			s.logger.Error("failed to save shop state",
				zap.String("shop_id", shop.ID.String()), zap.Error(err))
			return nil, err
		}
		s.logger.Info("shop state changed",
			zap.String("shop_id", shop.ID.String()),
			zap.Bool("accepting_orders", accepting),
		)
	}

	return &PartnerStateResult{
		ShopID:          shop.ID,
		Name:            shop.Name,
		AcceptingOrders: shop.AcceptingOrders,
	}, nil
}

func (s *PartnerService) findOwnShop(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	shop, err := s.shops.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("SHOP_NOT_FOUND",
				"No shop is linked to this account yet; import a price list first")
		}
		return nil, err
	}
	return shop, nil
}
