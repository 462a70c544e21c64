package importapp

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

const validPriceList = `
shop: Svyaznoy
categories:
  - id: 224
    name: Smartphones
goods:
  - id: 4216292
    category: 224
    model: apple/iphone-xs
    name: Smartphone Apple iPhone XS 512GB
    price: 110000
    price_rrc: 116990
    quantity: 14
    parameters:
      "Color": gold
`

type stubFetcher struct {
	body []byte
	err  error
}

func (f *stubFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f.body, f.err
}

type recordingArchiver struct {
	shop string
	doc  []byte
	err  error
}

func (a *recordingArchiver) Archive(_ context.Context, shopName string, doc []byte) error {
	a.shop = shopName
	a.doc = doc
	return a.err
}

// MockCatalogImporter is a mock implementation of catalog.CatalogImporter
type MockCatalogImporter struct {
	mock.Mock
}

func (m *MockCatalogImporter) ReplaceShopCatalog(ctx context.Context, shopName string, ownerID uuid.UUID, categories []catalog.ImportCategory, goods []catalog.ImportGood) (*catalog.ImportResult, error) {
	args := m.Called(ctx, shopName, ownerID, categories, goods)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.ImportResult), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func TestPriceListImportService(t *testing.T) {
	ownerID := uuid.New()

	t.Run("imports, archives and publishes", func(t *testing.T) {
		shop, err := catalog.NewShop("Svyaznoy", &ownerID)
		require.NoError(t, err)

		importer := new(MockCatalogImporter)
		importer.On("ReplaceShopCatalog", mock.Anything, "Svyaznoy", ownerID,
			mock.MatchedBy(func(categories []catalog.ImportCategory) bool {
				return len(categories) == 1 && categories[0].ExternalID == 224
			}),
			mock.MatchedBy(func(goods []catalog.ImportGood) bool {
				return len(goods) == 1 && goods[0].Parameters["Color"] == "gold"
			}),
		).Return(&catalog.ImportResult{Shop: shop, Categories: 1, Listings: 1}, nil)

		events := new(MockEventPublisher)
		events.On("Publish", mock.Anything, mock.MatchedBy(func(published []shared.DomainEvent) bool {
			if len(published) != 1 {
				return false
			}
			imported, ok := published[0].(*catalog.PriceListImportedEvent)
			return ok && imported.Listings == 1
		})).Return(nil)

		archiver := &recordingArchiver{}
		service := NewPriceListImportService(
			&stubFetcher{body: []byte(validPriceList)}, importer, archiver, events, zap.NewNop())

		result, err := service.Import(context.Background(), ImportInput{
			URL:    "https://partner.example.com/prices.yaml",
			UserID: ownerID,
		})

		require.NoError(t, err)
		assert.Equal(t, "Svyaznoy", result.ShopName)
		assert.Equal(t, 1, result.Categories)
		assert.Equal(t, 1, result.Listings)
		assert.Equal(t, "Svyaznoy", archiver.shop)
		assert.Equal(t, []byte(validPriceList), archiver.doc)
		importer.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("a fetch failure reaches neither importer nor archive", func(t *testing.T) {
		importer := new(MockCatalogImporter)
		archiver := &recordingArchiver{}
		service := NewPriceListImportService(
			&stubFetcher{err: shared.ErrUpstreamFetch}, importer, archiver, new(MockEventPublisher), zap.NewNop())

		_, err := service.Import(context.Background(), ImportInput{
			URL:    "https://partner.example.com/prices.yaml",
			UserID: ownerID,
		})

		assert.ErrorIs(t, err, shared.ErrUpstreamFetch)
		importer.AssertNotCalled(t, "ReplaceShopCatalog",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		assert.Nil(t, archiver.doc)
	})

	t.Run("an invalid document is rejected before the importer runs", func(t *testing.T) {
		importer := new(MockCatalogImporter)
		service := NewPriceListImportService(
			&stubFetcher{body: []byte("goods:\n  - id: 1")}, importer, &recordingArchiver{},
			new(MockEventPublisher), zap.NewNop())

		_, err := service.Import(context.Background(), ImportInput{
			URL:    "https://partner.example.com/prices.yaml",
			UserID: ownerID,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "shop name")
		importer.AssertNotCalled(t, "ReplaceShopCatalog",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("an archive failure does not fail the import", func(t *testing.T) {
		shop, err := catalog.NewShop("Svyaznoy", &ownerID)
		require.NoError(t, err)

		importer := new(MockCatalogImporter)
		importer.On("ReplaceShopCatalog", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&catalog.ImportResult{Shop: shop, Categories: 1, Listings: 1}, nil)
		events := new(MockEventPublisher)
		events.On("Publish", mock.Anything, mock.Anything).Return(nil)

		service := NewPriceListImportService(
			&stubFetcher{body: []byte(validPriceList)}, importer,
			&recordingArchiver{err: assert.AnError}, events, zap.NewNop())

		result, err := service.Import(context.Background(), ImportInput{
			URL:    "https://partner.example.com/prices.yaml",
			UserID: ownerID,
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Listings)
	})
}
