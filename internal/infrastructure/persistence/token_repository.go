package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/shared"
)

// GormConfirmationTokenRepository implements identity.ConfirmationTokenRepository using GORM
type GormConfirmationTokenRepository struct {
	db *gorm.DB
}

// NewGormConfirmationTokenRepository creates a new GormConfirmationTokenRepository
func NewGormConfirmationTokenRepository(db *gorm.DB) *GormConfirmationTokenRepository {
	return &GormConfirmationTokenRepository{db: db}
}

// Create inserts a new confirmation token
func (r *GormConfirmationTokenRepository) Create(ctx context.Context, token *identity.ConfirmationToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindByKey finds a token by its key
func (r *GormConfirmationTokenRepository) FindByKey(ctx context.Context, key string) (*identity.ConfirmationToken, error) {
	var token identity.ConfirmationToken
	if err := r.db.WithContext(ctx).First(&token, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// FindByUserAndPurpose finds the newest token issued to a user for a purpose
func (r *GormConfirmationTokenRepository) FindByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose identity.TokenPurpose) (*identity.ConfirmationToken, error) {
	var token identity.ConfirmationToken
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Order("created_at DESC").
		First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &token, nil
}

// Consume deletes a token by id so it cannot be redeemed twice. A token that
// is already gone is reported as not found.
func (r *GormConfirmationTokenRepository) Consume(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.ConfirmationToken{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByUserAndPurpose removes all of a user's tokens for a purpose.
// Used before issuing a replacement token.
func (r *GormConfirmationTokenRepository) DeleteByUserAndPurpose(ctx context.Context, userID uuid.UUID, purpose identity.TokenPurpose) error {
	return r.db.WithContext(ctx).
		Delete(&identity.ConfirmationToken{}, "user_id = ? AND purpose = ?", userID, purpose).Error
}

// Ensure GormConfirmationTokenRepository implements ConfirmationTokenRepository
var _ identity.ConfirmationTokenRepository = (*GormConfirmationTokenRepository)(nil)
