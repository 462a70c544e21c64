package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// Shop is a supplier profile. It optionally belongs to a user account with
// role shop; price list imports key the shop by name and owner.
type Shop struct {
	shared.BaseAggregateRoot
	Name            string     `gorm:"type:varchar(150);not null;uniqueIndex"`
	URL             string     `gorm:"type:varchar(500)"`
	UserID          *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	AcceptingOrders bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Shop) TableName() string {
	return "shops"
}

// NewShop creates a new shop owned by the given user
func NewShop(name string, userID *uuid.UUID) (*Shop, error) {
	name = normalizeName(name)
	if err := validateShopName(name); err != nil {
		return nil, err
	}

	return &Shop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		UserID:            userID,
		AcceptingOrders:   true,
	}, nil
}

// SetURL sets the shop's public URL
func (s *Shop) SetURL(u string) error {
	if len(u) > 500 {
		return shared.NewDomainError("INVALID_URL", "URL cannot exceed 500 characters")
	}

	s.URL = strings.TrimSpace(u)
	s.UpdatedAt = time.Now()

	return nil
}

// SetAcceptingOrders flips whether the shop's listings are orderable
func (s *Shop) SetAcceptingOrders(accepting bool) {
	if s.AcceptingOrders == accepting {
		return
	}

	s.AcceptingOrders = accepting
	s.UpdatedAt = time.Now()
}

// IsOwnedBy returns true if the shop belongs to the given user
func (s *Shop) IsOwnedBy(userID uuid.UUID) bool {
	return s.UserID != nil && *s.UserID == userID
}

func validateShopName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot be empty")
	}
	if len(name) > 150 {
		return shared.NewDomainError("INVALID_NAME", "Shop name cannot exceed 150 characters")
	}
	return nil
}
