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

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx returns a new repository instance bound to the given transaction
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: tx}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Upsert resolves a product by (name, category), inserting it when absent
func (r *GormProductRepository) Upsert(ctx context.Context, name string, categoryID uuid.UUID) (*catalog.Product, shared.UpsertOutcome, error) {
	product, err := catalog.NewProduct(name, categoryID)
	if err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "category_id"}},
			DoNothing: true,
		}).
		Create(product).Error; err != nil {
		return nil, 0, err
	}

	var existing catalog.Product
	if err := r.db.WithContext(ctx).
		First(&existing, "name = ? AND category_id = ?", product.Name, categoryID).Error; err != nil {
		return nil, 0, err
	}

	if existing.ID == product.ID {
		return &existing, shared.Created, nil
	}
	return &existing, shared.AlreadyExisted, nil
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
