package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// GormShopRepository implements catalog.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// WithTx returns a new repository instance bound to the given transaction
func (r *GormShopRepository) WithTx(tx *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: tx}
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByUser finds the shop owned by the given user
func (r *GormShopRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindAll returns shops matching the filter with the total count
func (r *GormShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Shop, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Shop{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var shops []*catalog.Shop
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("name ASC").Find(&shops).Error; err != nil {
		return nil, 0, err
	}

	return shops, total, nil
}

// Save persists shop changes with an optimistic version check against the
// version the aggregate was loaded with
func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Shop{}).
		Where("id = ? AND version = ?", shop.ID, shop.Version).
		Updates(map[string]interface{}{
			"name":             shop.Name,
			"url":              shop.URL,
			"user_id":          shop.UserID,
			"accepting_orders": shop.AcceptingOrders,
			"updated_at":       shop.UpdatedAt,
			"version":          shop.Version + 1,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	shop.IncrementVersion()
	return nil
}

// Upsert resolves a shop by its unique name, inserting it with the given
// owner when absent. ON CONFLICT DO NOTHING plus a re-fetch keeps concurrent
// first imports race-free.
func (r *GormShopRepository) Upsert(ctx context.Context, name string, userID uuid.UUID) (*catalog.Shop, shared.UpsertOutcome, error) {
	shop, err := catalog.NewShop(name, &userID)
	if err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(shop).Error; err != nil {
		return nil, 0, err
	}

	var existing catalog.Shop
	if err := r.db.WithContext(ctx).First(&existing, "name = ?", shop.Name).Error; err != nil {
		return nil, 0, err
	}

	if existing.ID == shop.ID {
		return &existing, shared.Created, nil
	}
	return &existing, shared.AlreadyExisted, nil
}

// Ensure GormShopRepository implements ShopRepository
var _ catalog.ShopRepository = (*GormShopRepository)(nil)
