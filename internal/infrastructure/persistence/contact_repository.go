package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/shared"
)

// GormContactRepository implements identity.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// Create inserts a new contact
func (r *GormContactRepository) Create(ctx context.Context, contact *identity.Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

// Update persists contact changes
func (r *GormContactRepository) Update(ctx context.Context, contact *identity.Contact) error {
	result := r.db.WithContext(ctx).
		Model(&identity.Contact{}).
		Where("id = ?", contact.ID).
		Select("city", "street", "house", "building", "apartment", "phone", "updated_at").
		Updates(contact)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a contact
func (r *GormContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a contact by its ID
func (r *GormContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Contact, error) {
	var contact identity.Contact
	if err := r.db.WithContext(ctx).First(&contact, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByUser returns all contacts of a user, oldest first
func (r *GormContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*identity.Contact, error) {
	var contacts []*identity.Contact
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// CountByUser counts a user's contacts
func (r *GormContactRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Contact{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormContactRepository implements ContactRepository
var _ identity.ContactRepository = (*GormContactRepository)(nil)
