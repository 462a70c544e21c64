package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/retailorders/backend/internal/domain/shared"
)

// Category groups products. The external ID comes from supplier price lists
// and is the upsert key alongside the unique name; a category may be offered
// by many shops.
type Category struct {
	shared.BaseAggregateRoot
	ExternalID int64  `gorm:"not null;uniqueIndex"`
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Shops      []Shop `gorm:"many2many:shop_categories"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category from a price list entry
func NewCategory(externalID int64, name string) (*Category, error) {
	name = normalizeName(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "Category external ID must be positive")
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ExternalID:        externalID,
		Name:              name,
	}, nil
}

func validateCategoryName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return nil
}

// normalizeName trims whitespace and applies NFC so that visually identical
// names from different price lists hit the same uniqueness constraint.
func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
