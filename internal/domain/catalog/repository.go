package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ShopRepository defines the persistence contract for shops
type ShopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByUser(ctx context.Context, userID uuid.UUID) (*Shop, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Shop, int64, error)
	Save(ctx context.Context, shop *Shop) error
	// Upsert resolves the shop by unique name, creating it owned by userID
	// when absent. The outcome tells the caller which happened.
	Upsert(ctx context.Context, name string, userID uuid.UUID) (*Shop, shared.UpsertOutcome, error)
}

// CategoryRepository defines the persistence contract for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*Category, int64, error)
	// Upsert resolves the category by external id and name, creating it when
	// absent. Guarded by the uniqueness constraints, never check-then-insert.
	Upsert(ctx context.Context, externalID int64, name string) (*Category, shared.UpsertOutcome, error)
	// AttachShop links a category to a shop, idempotently.
	AttachShop(ctx context.Context, categoryID, shopID uuid.UUID) error
}

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Upsert(ctx context.Context, name string, categoryID uuid.UUID) (*Product, shared.UpsertOutcome, error)
}

// ParameterRepository defines the persistence contract for named attributes
type ParameterRepository interface {
	Upsert(ctx context.Context, name string) (*Parameter, shared.UpsertOutcome, error)
}

// ListingFilter narrows public catalog queries. Only listings of shops that
// are accepting orders are returned.
type ListingFilter struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
	Page       int
	PageSize   int
}

// ListingRepository defines the persistence contract for listings
type ListingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Listing, error)
	// Query returns listings of order-accepting shops with product, category
	// and parameter detail preloaded.
	Query(ctx context.Context, filter ListingFilter) ([]*Listing, int64, error)
}

// ImportCategory is a category entry from a validated price list
type ImportCategory struct {
	ExternalID int64
	Name       string
}

// ImportGood is a goods entry from a validated price list
type ImportGood struct {
	ExternalID         int64
	CategoryExternalID int64
	Name               string
	Quantity           int
	Price              decimal.Decimal
	PriceRRC           decimal.Decimal
	Parameters         map[string]string
}

// ImportResult summarizes a completed catalog replacement
type ImportResult struct {
	Shop       *Shop
	Categories int
	Listings   int
}

// CatalogImporter replaces a shop's catalog in one transaction: upsert the
// shop by (name, owner), upsert the categories and attach them to the shop,
// delete all of the shop's listings, insert the new ones with their products
// and parameters. Any failure rolls back the whole batch leaving the prior
// catalog intact.
type CatalogImporter interface {
	ReplaceShopCatalog(ctx context.Context, shopName string, ownerID uuid.UUID, categories []ImportCategory, goods []ImportGood) (*ImportResult, error)
}
