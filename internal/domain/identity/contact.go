package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// MaxContactsPerUser caps the size of a user's address book
const MaxContactsPerUser = 5

// Contact is a shipping address owned by exactly one user
type Contact struct {
	shared.BaseEntity
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      string    `gorm:"type:varchar(100);not null"`
	Street    string    `gorm:"type:varchar(150);not null"`
	House     string    `gorm:"type:varchar(20)"`
	Building  string    `gorm:"type:varchar(20)"`
	Apartment string    `gorm:"type:varchar(20)"`
	Phone     string    `gorm:"type:varchar(30);not null"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact for the given user
func NewContact(userID uuid.UUID, city, street, house, building, apartment, phone string) (*Contact, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	c := &Contact{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		City:       strings.TrimSpace(city),
		Street:     strings.TrimSpace(street),
		House:      strings.TrimSpace(house),
		Building:   strings.TrimSpace(building),
		Apartment:  strings.TrimSpace(apartment),
		Phone:      strings.TrimSpace(phone),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Update replaces the contact's address fields
func (c *Contact) Update(city, street, house, building, apartment, phone string) error {
	updated := *c
	updated.City = strings.TrimSpace(city)
	updated.Street = strings.TrimSpace(street)
	updated.House = strings.TrimSpace(house)
	updated.Building = strings.TrimSpace(building)
	updated.Apartment = strings.TrimSpace(apartment)
	updated.Phone = strings.TrimSpace(phone)
	if err := updated.validate(); err != nil {
		return err
	}

	*c = updated
	c.UpdatedAt = time.Now()

	return nil
}

// BelongsTo returns true if the contact is owned by the given user
func (c *Contact) BelongsTo(userID uuid.UUID) bool {
	return c.UserID == userID
}

func (c *Contact) validate() error {
	if c.City == "" {
		return shared.NewDomainError("INVALID_CONTACT", "City cannot be empty")
	}
	if c.Street == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Street cannot be empty")
	}
	if c.Phone == "" {
		return shared.NewDomainError("INVALID_CONTACT", "Phone cannot be empty")
	}
	if len(c.City) > 100 || len(c.Street) > 150 {
		return shared.NewDomainError("INVALID_CONTACT", "Address field too long")
	}
	if len(c.Phone) > 30 {
		return shared.NewDomainError("INVALID_CONTACT", "Phone cannot exceed 30 characters")
	}
	return nil
}
