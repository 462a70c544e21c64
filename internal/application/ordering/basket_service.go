package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/ordering"
	"github.com/retailorders/backend/internal/domain/shared"
)

// BasketService manages a buyer's single draft order
type BasketService struct {
	orders   ordering.OrderRepository
	listings catalog.ListingRepository
	logger   *zap.Logger
}

// NewBasketService creates a new BasketService
func NewBasketService(orders ordering.OrderRepository, listings catalog.ListingRepository, logger *zap.Logger) *BasketService {
	return &BasketService{orders: orders, listings: listings, logger: logger}
}

// GetBasket returns the user's basket, creating an empty one on first use
func (s *BasketService) GetBasket(ctx context.Context, userID uuid.UUID) (*OrderView, error) {
	basket, _, err := s.orders.CurrentBasket(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load basket", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	view := orderViewFrom(basket)
	return &view, nil
}

// AddLines adds listings to the basket. Each requested line succeeds or
// fails on its own; a listing already present reports a conflict without
// touching the others.
func (s *BasketService) AddLines(ctx context.Context, userID uuid.UUID, inputs []AddLineInput) ([]AddLineResult, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("VALIDATION_FAILED", "No lines to add")
	}

	basket, _, err := s.orders.CurrentBasket(ctx, userID)
	if err != nil {
		return nil, err
	}

	listingIDs := lo.Map(inputs, func(in AddLineInput, _ int) uuid.UUID { return in.ListingID })
	known, err := s.listings.FindByIDs(ctx, listingIDs)
	if err != nil {
		return nil, err
	}
	byID := lo.SliceToMap(known, func(l *catalog.Listing) (uuid.UUID, *catalog.Listing) { return l.ID, l })

	results := make([]AddLineResult, 0, len(inputs))
	added := 0
	for _, in := range inputs {
		result := AddLineResult{ListingID: in.ListingID}

		listing, ok := byID[in.ListingID]
		if !ok {
			result.Error = "Listing not found"
			results = append(results, result)
			continue
		}

		if err := basket.AddLine(in.ListingID, in.Quantity); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}

		line := basket.Lines[len(basket.Lines)-1]
		line.Listing = listing
		basket.Lines[len(basket.Lines)-1] = line

		result.LineID = line.ID
		result.Added = true
		results = append(results, result)
		added++
	}

	if added > 0 {
		if err := s.orders.Save(ctx, basket); err != nil {
			s.logger.Error("failed to save basket", zap.String("user_id", userID.String()), zap.Error(err))
			return nil, err
		}
	}

	return results, nil
}

// UpdateQuantities bulk-sets line quantities. Line ids not present in the
// basket are skipped; the count of changed lines is returned.
func (s *BasketService) UpdateQuantities(ctx context.Context, userID uuid.UUID, inputs []LineQuantityInput) (int, error) {
	if len(inputs) == 0 {
		return 0, shared.NewDomainError("VALIDATION_FAILED", "No lines to update")
	}

	basket, _, err := s.orders.CurrentBasket(ctx, userID)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, in := range inputs {
		changed, err := basket.UpdateLineQuantity(in.LineID, in.Quantity)
		if err != nil {
			return 0, err
		}
		if changed {
			updated++
		}
	}

	if updated > 0 {
		if err := s.orders.Save(ctx, basket); err != nil {
			s.logger.Error("failed to save basket", zap.String("user_id", userID.String()), zap.Error(err))
			return 0, err
		}
	}

	return updated, nil
}

// RemoveLines deletes basket lines by id, returning how many were removed
func (s *BasketService) RemoveLines(ctx context.Context, userID uuid.UUID, lineIDs []uuid.UUID) (int, error) {
	if len(lineIDs) == 0 {
		return 0, shared.NewDomainError("VALIDATION_FAILED", "No lines to remove")
	}

	basket, outcome, err := s.orders.CurrentBasket(ctx, userID)
	if err != nil {
		return 0, err
	}
	if outcome == shared.Created {
		// a basket created just now has nothing to remove
		return 0, nil
	}

	removed, err := basket.RemoveLines(lineIDs)
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		if err := s.orders.Save(ctx, basket); err != nil {
			s.logger.Error("failed to save basket", zap.String("user_id", userID.String()), zap.Error(err))
			return 0, err
		}
	}

	return removed, nil
}
