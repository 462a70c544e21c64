package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// GormCatalogImporter implements catalog.CatalogImporter. The whole
// replacement runs in one transaction: either the shop ends up with exactly
// the new catalog, or its previous catalog is left untouched.
type GormCatalogImporter struct {
	db *gorm.DB
}

// NewGormCatalogImporter creates a new GormCatalogImporter
func NewGormCatalogImporter(db *gorm.DB) *GormCatalogImporter {
	return &GormCatalogImporter{db: db}
}

// ReplaceShopCatalog upserts the shop and its categories, drops the shop's
// old listings and inserts the new ones with their products and parameters
func (i *GormCatalogImporter) ReplaceShopCatalog(ctx context.Context, shopName string, ownerID uuid.UUID, categories []catalog.ImportCategory, goods []catalog.ImportGood) (*catalog.ImportResult, error) {
	var result *catalog.ImportResult

	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		shops := NewGormShopRepository(tx)
		cats := NewGormCategoryRepository(tx)
		products := NewGormProductRepository(tx)
		parameters := NewGormParameterRepository(tx)

		shop, _, err := shops.Upsert(ctx, shopName, ownerID)
		if err != nil {
			return err
		}
		if !shop.IsOwnedBy(ownerID) {
			return shared.NewDomainError("SHOP_NOT_OWNED", "Shop belongs to another user")
		}

		categoryByExternalID := make(map[int64]*catalog.Category, len(categories))
		for _, c := range categories {
			category, _, err := cats.Upsert(ctx, c.ExternalID, c.Name)
			if err != nil {
				return err
			}
			if err := cats.AttachShop(ctx, category.ID, shop.ID); err != nil {
				return err
			}
			categoryByExternalID[c.ExternalID] = category
		}

		if err := i.deleteShopListings(tx, shop.ID); err != nil {
			return err
		}

		for _, good := range goods {
			category, ok := categoryByExternalID[good.CategoryExternalID]
			if !ok {
				return shared.NewDomainError("UNKNOWN_CATEGORY",
					"Goods entry references a category not declared in the price list")
			}

			product, _, err := products.Upsert(ctx, good.Name, category.ID)
			if err != nil {
				return err
			}

			listing, err := catalog.NewListing(shop.ID, product.ID, good.ExternalID, good.Quantity, good.Price, good.PriceRRC)
			if err != nil {
				return err
			}

			for name, value := range good.Parameters {
				parameter, _, err := parameters.Upsert(ctx, name)
				if err != nil {
					return err
				}
				if err := listing.AddParameter(parameter.ID, value); err != nil {
					return err
				}
			}

			if err := tx.Create(listing).Error; err != nil {
				if isUniqueViolation(err) {
					return shared.NewDomainError("DUPLICATE_GOODS",
						"Price list contains duplicate goods entries")
				}
				return err
			}
		}

		result = &catalog.ImportResult{
			Shop:       shop,
			Categories: len(categories),
			Listings:   len(goods),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// deleteShopListings removes the shop's listings and their parameter values
func (i *GormCatalogImporter) deleteShopListings(tx *gorm.DB, shopID uuid.UUID) error {
	if err := tx.
		Where("listing_id IN (?)", tx.Model(&catalog.Listing{}).Select("id").Where("shop_id = ?", shopID)).
		Delete(&catalog.ListingParameter{}).Error; err != nil {
		return err
	}
	return tx.Where("shop_id = ?", shopID).Delete(&catalog.Listing{}).Error
}

// Ensure GormCatalogImporter implements CatalogImporter
var _ catalog.CatalogImporter = (*GormCatalogImporter)(nil)
