package catalog

import (
	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShop = "Shop"

// Event type constants
const (
	EventTypePriceListImported = "PriceListImported"
)

// PriceListImportedEvent is published after a shop's catalog has been
// replaced from a price list
type PriceListImportedEvent struct {
	shared.BaseDomainEvent
	ShopID     uuid.UUID `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	Categories int       `json:"categories"`
	Listings   int       `json:"listings"`
}

// NewPriceListImportedEvent creates a new PriceListImportedEvent
func NewPriceListImportedEvent(shop *Shop, categories, listings int) *PriceListImportedEvent {
	return &PriceListImportedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePriceListImported, AggregateTypeShop, shop.ID),
		ShopID:          shop.ID,
		ShopName:        shop.Name,
		Categories:      categories,
		Listings:        listings,
	}
}
