package catalog

import (
	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Listing is a shop's offering of a product: external id, stock quantity,
// price and recommended retail price. Unique per (shop, product, external id).
// Imports replace a shop's listings wholesale, so rows are always inserted
// fresh and never merged with prior state.
type Listing struct {
	shared.BaseAggregateRoot
	ShopID     uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_listing_shop_product_ext,priority:1;index"`
	ProductID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_listing_shop_product_ext,priority:2;index"`
	ExternalID int64              `gorm:"not null;uniqueIndex:idx_listing_shop_product_ext,priority:3"`
	Quantity   int                `gorm:"not null"`
	Price      decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	PriceRRC   decimal.Decimal    `gorm:"type:decimal(12,2);not null"`
	Product    *Product           `gorm:"foreignKey:ProductID"`
	Shop       *Shop              `gorm:"foreignKey:ShopID"`
	Parameters []ListingParameter `gorm:"foreignKey:ListingID"`
}

// TableName returns the table name for GORM
func (Listing) TableName() string {
	return "listings"
}

// NewListing creates a new listing for a shop's product
func NewListing(shopID, productID uuid.UUID, externalID int64, quantity int, price, priceRRC decimal.Decimal) (*Listing, error) {
	if shopID == uuid.Nil || productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LISTING", "Listing requires a shop and a product")
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_LISTING", "Listing external ID must be positive")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_LISTING", "Listing quantity cannot be negative")
	}
	if price.IsNegative() || priceRRC.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LISTING", "Listing price cannot be negative")
	}

	return &Listing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShopID:            shopID,
		ProductID:         productID,
		ExternalID:        externalID,
		Quantity:          quantity,
		Price:             price,
		PriceRRC:          priceRRC,
	}, nil
}

// AddParameter attaches a named attribute value to the listing
func (l *Listing) AddParameter(parameterID uuid.UUID, value string) error {
	if parameterID == uuid.Nil {
		return shared.NewDomainError("INVALID_PARAMETER", "Parameter ID cannot be empty")
	}
	for _, p := range l.Parameters {
		if p.ParameterID == parameterID {
			return shared.NewDomainError("DUPLICATE_PARAMETER", "Listing already has this parameter")
		}
	}

	l.Parameters = append(l.Parameters, ListingParameter{
		BaseEntity:  shared.NewBaseEntity(),
		ListingID:   l.ID,
		ParameterID: parameterID,
		Value:       value,
	})

	return nil
}
