package catalog

import (
	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// Product is a named item within one category. Shops offer it through
// listings; the product row itself is shared across shops.
type Product struct {
	shared.BaseEntity
	Name       string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_product_name_category,priority:1"`
	CategoryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_name_category,priority:2;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in the given category
func NewProduct(name string, categoryID uuid.UUID) (*Product, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product requires a category")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		CategoryID: categoryID,
	}, nil
}
