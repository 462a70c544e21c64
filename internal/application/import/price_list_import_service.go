package importapp

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
	"github.com/retailorders/backend/internal/infrastructure/pricelist"
)

// ImportInput identifies the price list to import and the shop account
// performing the import
type ImportInput struct {
	URL    string
	UserID uuid.UUID
}

// ImportResult summarizes a completed import
type ImportResult struct {
	ShopID     uuid.UUID `json:"shop_id"`
	ShopName   string    `json:"shop_name"`
	Categories int       `json:"categories"`
	Listings   int       `json:"listings"`
}

// PriceListImportService drives the full-replace price list import: fetch
// the YAML document from the partner's URL, validate it, replace the shop's
// catalog in one transaction, then archive the raw document.
type PriceListImportService struct {
	fetcher  pricelist.Fetcher
	importer catalog.CatalogImporter
	archiver pricelist.Archiver
	events   shared.EventPublisher
	logger   *zap.Logger
}

// NewPriceListImportService creates a new PriceListImportService
func NewPriceListImportService(
	fetcher pricelist.Fetcher,
	importer catalog.CatalogImporter,
	archiver pricelist.Archiver,
	events shared.EventPublisher,
	logger *zap.Logger,
) *PriceListImportService {
	return &PriceListImportService{
		fetcher:  fetcher,
		importer: importer,
		archiver: archiver,
		events:   events,
		logger:   logger,
	}
}

// Import runs one import end to end. The catalog replacement is atomic;
// archiving happens after the commit and never fails the import.
func (s *PriceListImportService) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	raw, err := s.fetcher.Fetch(ctx, input.URL)
	if err != nil {
		s.logger.Warn("price list fetch failed",
			zap.String("url", input.URL), zap.Error(err))
		return nil, err
	}

	doc, err := pricelist.Parse(raw)
	if err != nil {
		s.logger.Warn("price list rejected",
			zap.String("url", input.URL), zap.Error(err))
		return nil, err
	}

	result, err := s.importer.ReplaceShopCatalog(ctx, doc.ShopName, input.UserID, doc.Categories, doc.Goods)
	if err != nil {
		s.logger.Error("catalog replacement failed",
			zap.String("shop", doc.ShopName), zap.Error(err))
		return nil, err
	}

	if err := s.archiver.Archive(ctx, result.Shop.Name, raw); err != nil {
		s.logger.Warn("failed to archive price list",
			zap.String("shop", result.Shop.Name), zap.Error(err))
	}

	event := catalog.NewPriceListImportedEvent(result.Shop, result.Categories, result.Listings)
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish import event", zap.Error(err))
	}

	s.logger.Info("price list imported",
		zap.String("shop", result.Shop.Name),
		zap.Int("categories", result.Categories),
		zap.Int("listings", result.Listings),
	)

	return &ImportResult{
		ShopID:     result.Shop.ID,
		ShopName:   result.Shop.Name,
		Categories: result.Categories,
		Listings:   result.Listings,
	}, nil
}
