package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/shared"
)

// ContactService manages a user's shipping contacts
type ContactService struct {
	contacts identity.ContactRepository
	logger   *zap.Logger
}

// NewContactService creates a new ContactService
func NewContactService(contacts identity.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{contacts: contacts, logger: logger}
}

// List returns the user's contacts, oldest first
func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]*identity.Contact, error) {
	return s.contacts.FindByUser(ctx, userID)
}

// Create adds a contact for the user, enforcing the per-user cap
func (s *ContactService) Create(ctx context.Context, userID uuid.UUID, input ContactInput) (*identity.Contact, error) {
	count, err := s.contacts.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= identity.MaxContactsPerUser {
		return nil, shared.NewDomainError("CONTACT_LIMIT",
			"Cannot have more than 5 contacts")
	}

	contact, err := identity.NewContact(userID,
		input.City, input.Street, input.House, input.Building, input.Apartment, input.Phone)
	if err != nil {
		return nil, err
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		s.logger.Error("failed to create contact",
			zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	return contact, nil
}

// Update replaces the address fields of a contact owned by the user
func (s *ContactService) Update(ctx context.Context, userID, contactID uuid.UUID, input ContactInput) (*identity.Contact, error) {
	contact, err := s.findOwned(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	if err := contact.Update(input.City, input.Street, input.House, input.Building, input.Apartment, input.Phone); err != nil {
		return nil, err
	}

	if err := s.contacts.Update(ctx, contact); err != nil {
		s.logger.Error("failed to update contact",
			zap.String("contact_id", contactID.String()), zap.Error(err))
		return nil, err
	}

	return contact, nil
}

// Delete removes a contact owned by the user
func (s *ContactService) Delete(ctx context.Context, userID, contactID uuid.UUID) error {
	if _, err := s.findOwned(ctx, userID, contactID); err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, contactID); err != nil {
		s.logger.Error("failed to delete contact",
			zap.String("contact_id", contactID.String()), zap.Error(err))
		return err
	}

	return nil
}

// findOwned loads a contact and hides other users' contacts behind not found
func (s *ContactService) findOwned(ctx context.Context, userID, contactID uuid.UUID) (*identity.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if !contact.BelongsTo(userID) {
		return nil, shared.ErrNotFound
	}
	return contact, nil
}
