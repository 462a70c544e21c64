package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// GormListingRepository implements catalog.ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID loads a listing with its product, shop and parameters
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	var listing catalog.Listing
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Shop").
		Preload("Parameters.Parameter").
		First(&listing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &listing, nil
}

// FindByIDs loads multiple listings with product and shop detail. Missing
// ids are simply absent from the result.
func (r *GormListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Listing, error) {
	if len(ids) == 0 {
		return []*catalog.Listing{}, nil
	}

	var listings []*catalog.Listing
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Shop").
		Where("id IN ?", ids).
		Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// Query returns listings of order-accepting shops with full detail preloaded
func (r *GormListingRepository) Query(ctx context.Context, filter catalog.ListingFilter) ([]*catalog.Listing, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.Listing{}).
		Joins("JOIN shops ON shops.id = listings.shop_id").
		Where("shops.accepting_orders = ?", true)

	if filter.ShopID != nil {
		query = query.Where("listings.shop_id = ?", *filter.ShopID)
	}
	if filter.CategoryID != nil {
		query = query.
			Joins("JOIN products ON products.id = listings.product_id").
			Where("products.category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var listings []*catalog.Listing
	if err := query.
		Preload("Product").
		Preload("Shop").
		Preload("Parameters.Parameter").
		Order("listings.created_at ASC").
		Find(&listings).Error; err != nil {
		return nil, 0, err
	}

	return listings, total, nil
}

// Ensure GormListingRepository implements ListingRepository
var _ catalog.ListingRepository = (*GormListingRepository)(nil)
