package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// GormParameterRepository implements catalog.ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// WithTx returns a new repository instance bound to the given transaction
func (r *GormParameterRepository) WithTx(tx *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: tx}
}

// Upsert resolves a parameter by its unique name, inserting it when absent
func (r *GormParameterRepository) Upsert(ctx context.Context, name string) (*catalog.Parameter, shared.UpsertOutcome, error) {
	parameter, err := catalog.NewParameter(name)
	if err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(parameter).Error; err != nil {
		return nil, 0, err
	}

	var existing catalog.Parameter
	if err := r.db.WithContext(ctx).First(&existing, "name = ?", parameter.Name).Error; err != nil {
		return nil, 0, err
	}

	if existing.ID == parameter.ID {
		return &existing, shared.Created, nil
	}
	return &existing, shared.AlreadyExisted, nil
}

// Ensure GormParameterRepository implements ParameterRepository
var _ catalog.ParameterRepository = (*GormParameterRepository)(nil)
