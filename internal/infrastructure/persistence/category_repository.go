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

// shopCategory is the join row linking shops to the categories they offer
type shopCategory struct {
	ShopID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (shopCategory) TableName() string {
	return "shop_categories"
}

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// WithTx returns a new repository instance bound to the given transaction
func (r *GormCategoryRepository) WithTx(tx *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: tx}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll returns categories matching the filter with the total count
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Category, int64, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Category{})

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*catalog.Category
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, 0, err
	}

	return categories, total, nil
}

// Upsert resolves a category by its unique external id, inserting it when
// absent. The write is guarded by the index, never check-then-insert.
func (r *GormCategoryRepository) Upsert(ctx context.Context, externalID int64, name string) (*catalog.Category, shared.UpsertOutcome, error) {
	category, err := catalog.NewCategory(externalID, name)
	if err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Omit("Shops").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(category).Error; err != nil {
		return nil, 0, err
	}

	var existing catalog.Category
	if err := r.db.WithContext(ctx).First(&existing, "external_id = ?", externalID).Error; err != nil {
		return nil, 0, err
	}

	if existing.ID == category.ID {
		return &existing, shared.Created, nil
	}
	return &existing, shared.AlreadyExisted, nil
}

// AttachShop links a category to a shop. Re-attaching is a no-op.
func (r *GormCategoryRepository) AttachShop(ctx context.Context, categoryID, shopID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&shopCategory{ShopID: shopID, CategoryID: categoryID}).Error
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
