package catalog

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// CatalogService serves the public, unauthenticated catalog queries
type CatalogService struct {
	categories catalog.CategoryRepository
	shops      catalog.ShopRepository
	listings   catalog.ListingRepository
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	categories catalog.CategoryRepository,
	shops catalog.ShopRepository,
	listings catalog.ListingRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		shops:      shops,
		listings:   listings,
		logger:     logger,
	}
}

// ListCategories returns all categories known to the catalog
func (s *CatalogService) ListCategories(ctx context.Context, filter shared.Filter) ([]CategoryView, int64, error) {
	categories, total, err := s.categories.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, 0, err
	}

	views := lo.Map(categories, func(c *catalog.Category, _ int) CategoryView {
		return categoryViewFrom(c)
	})
	return views, total, nil
}

// ListShops returns shops matching the filter
func (s *CatalogService) ListShops(ctx context.Context, input ListShopsInput) ([]ShopView, int64, error) {
	filter := shared.Filter{
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	shops, total, err := s.shops.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list shops", zap.Error(err))
		return nil, 0, err
	}

	views := lo.Map(shops, func(shop *catalog.Shop, _ int) ShopView {
		return shopViewFrom(shop)
	})
	return views, total, nil
}

// QueryListings searches orderable product listings. Listings of shops that
// are not accepting orders are excluded by the repository.
func (s *CatalogService) QueryListings(ctx context.Context, input QueryListingsInput) ([]ListingView, int64, error) {
	listings, total, err := s.listings.Query(ctx, catalog.ListingFilter{
		ShopID:     input.ShopID,
		CategoryID: input.CategoryID,
		Page:       input.Page,
		PageSize:   input.PageSize,
	})
	if err != nil {
		s.logger.Error("failed to query listings", zap.Error(err))
		return nil, 0, err
	}

	views := lo.Map(listings, func(listing *catalog.Listing, _ int) ListingView {
		return ListingViewFrom(listing)
	})
	return views, total, nil
}
