package catalog

import (
	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// Parameter is a named attribute such as "color" or "memory". Names are
// unique; values live on ListingParameter.
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Parameter) TableName() string {
	return "parameters"
}

// NewParameter creates a new named attribute
func NewParameter(name string) (*Parameter, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Parameter name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Parameter name cannot exceed 100 characters")
	}

	return &Parameter{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// ListingParameter holds a parameter value for one listing, unique per
// (listing, parameter) pair
type ListingParameter struct {
	shared.BaseEntity
	ListingID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_listing_parameter,priority:1"`
	ParameterID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_listing_parameter,priority:2"`
	Value       string     `gorm:"type:varchar(200);not null"`
	Parameter   *Parameter `gorm:"foreignKey:ParameterID"`
}

// TableName returns the table name for GORM
func (ListingParameter) TableName() string {
	return "listing_parameters"
}
