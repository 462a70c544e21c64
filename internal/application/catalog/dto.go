package catalog

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/retailorders/backend/internal/domain/catalog"
)

// CategoryView is the public shape of a category
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ShopView is the public shape of a shop
type ShopView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	URL             string    `json:"url,omitempty"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

// ListingView is the public shape of a product listing
type ListingView struct {
	ID         uuid.UUID         `json:"id"`
	Product    string            `json:"product"`
	Shop       string            `json:"shop"`
	ShopID     uuid.UUID         `json:"shop_id"`
	Quantity   int               `json:"quantity"`
	Price      decimal.Decimal   `json:"price"`
	PriceRRC   decimal.Decimal   `json:"price_rrc"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// ListShopsInput narrows the public shop listing
type ListShopsInput struct {
	Search   string
	Page     int
	PageSize int
}

// QueryListingsInput narrows the public product search
type QueryListingsInput struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
	Page       int
	PageSize   int
}

// PartnerStateResult reports a shop's order-accepting state
type PartnerStateResult struct {
	ShopID          uuid.UUID `json:"shop_id"`
	Name            string    `json:"name"`
	AcceptingOrders bool      `json:"accepting_orders"`
}

func categoryViewFrom(category *catalog.Category) CategoryView {
	return CategoryView{ID: category.ID, Name: category.Name}
}

func shopViewFrom(shop *catalog.Shop) ShopView {
	return ShopView{
		ID:              shop.ID,
		Name:            shop.Name,
		URL:             shop.URL,
		AcceptingOrders: shop.AcceptingOrders,
	}
}

// ListingViewFrom maps a listing with its preloaded associations
func ListingViewFrom(listing *catalog.Listing) ListingView {
	view := ListingView{
		ID:       listing.ID,
		ShopID:   listing.ShopID,
		Quantity: listing.Quantity,
		Price:    listing.Price,
		PriceRRC: listing.PriceRRC,
	}
	if listing.Product != nil {
		view.Product = listing.Product.Name
	}
	if listing.Shop != nil {
		view.Shop = listing.Shop.Name
	}
	if len(listing.Parameters) > 0 {
		view.Parameters = lo.SliceToMap(listing.Parameters, func(p catalog.ListingParameter) (string, string) {
			if p.Parameter == nil {
				return "", ""
			}
			return p.Parameter.Name, p.Value
		})
		delete(view.Parameters, "")
	}
	return view
}
