package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/retailorders/backend/internal/domain/catalog"
	"github.com/retailorders/backend/internal/domain/shared"
)

// MockShopRepository is a mock implementation of catalog.ShopRepository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Shop), args.Error(1)
}

func (m *MockShopRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Shop, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Shop), args.Get(1).(int64), args.Error(2)
}

func (m *MockShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) Upsert(ctx context.Context, name string, userID uuid.UUID) (*catalog.Shop, shared.UpsertOutcome, error) {
	args := m.Called(ctx, name, userID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*catalog.Shop), args.Get(1).(shared.UpsertOutcome), args.Error(2)
}

// MockCategoryRepository is a mock implementation of catalog.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Category, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Category), args.Get(1).(int64), args.Error(2)
}

func (m *MockCategoryRepository) Upsert(ctx context.Context, externalID int64, name string) (*catalog.Category, shared.UpsertOutcome, error) {
	args := m.Called(ctx, externalID, name)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*catalog.Category), args.Get(1).(shared.UpsertOutcome), args.Error(2)
}

func (m *MockCategoryRepository) AttachShop(ctx context.Context, categoryID, shopID uuid.UUID) error {
	args := m.Called(ctx, categoryID, shopID)
	return args.Error(0)
}

// MockListingRepository is a mock implementation of catalog.ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Listing, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Listing), args.Error(1)
}

func (m *MockListingRepository) Query(ctx context.Context, filter catalog.ListingFilter) ([]*catalog.Listing, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Listing), args.Get(1).(int64), args.Error(2)
}

func testListing(t *testing.T) *catalog.Listing {
	t.Helper()

	shop, err := catalog.NewShop("Svyaznoy", nil)
	require.NoError(t, err)
	product, err := catalog.NewProduct("Smartphone Apple iPhone XS 512GB", uuid.New())
	require.NoError(t, err)

	listing, err := catalog.NewListing(shop.ID, product.ID, 4216292, 14,
		decimal.NewFromInt(110000), decimal.NewFromInt(116990))
	require.NoError(t, err)
	listing.Shop = shop
	listing.Product = product

	color, err := catalog.NewParameter("Color")
	require.NoError(t, err)
	require.NoError(t, listing.AddParameter(color.ID, "gold"))
	listing.Parameters[0].Parameter = color

	return listing
}

func TestCatalogService_QueryListings(t *testing.T) {
	t.Run("maps listings with their detail", func(t *testing.T) {
		listings := new(MockListingRepository)
		service := NewCatalogService(new(MockCategoryRepository), new(MockShopRepository), listings, zap.NewNop())

		listing := testListing(t)
		listings.On("Query", mock.Anything, mock.Anything).
			Return([]*catalog.Listing{listing}, int64(1), nil)

		views, total, err := service.QueryListings(context.Background(), QueryListingsInput{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
		assert.Equal(t, "Smartphone Apple iPhone XS 512GB", views[0].Product)
		assert.Equal(t, "Svyaznoy", views[0].Shop)
		assert.Equal(t, 14, views[0].Quantity)
		assert.Equal(t, "gold", views[0].Parameters["Color"])
	})

	t.Run("forwards the shop and category filters", func(t *testing.T) {
		listings := new(MockListingRepository)
		service := NewCatalogService(new(MockCategoryRepository), new(MockShopRepository), listings, zap.NewNop())

		shopID := uuid.New()
		listings.On("Query", mock.Anything, mock.MatchedBy(func(f catalog.ListingFilter) bool {
			return f.ShopID != nil && *f.ShopID == shopID && f.Page == 2 && f.PageSize == 20
		})).Return([]*catalog.Listing{}, int64(0), nil)

		_, _, err := service.QueryListings(context.Background(), QueryListingsInput{
			ShopID:   &shopID,
			Page:     2,
			PageSize: 20,
		})

		require.NoError(t, err)
		listings.AssertExpectations(t)
	})
}

func TestCatalogService_ListShops(t *testing.T) {
	shops := new(MockShopRepository)
	service := NewCatalogService(new(MockCategoryRepository), shops, new(MockListingRepository), zap.NewNop())

	shop, err := catalog.NewShop("Svyaznoy", nil)
	require.NoError(t, err)

	shops.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == "svya"
	})).Return([]*catalog.Shop{shop}, int64(1), nil)

	views, total, err := service.ListShops(context.Background(), ListShopsInput{Search: "svya"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, views, 1)
	assert.Equal(t, "Svyaznoy", views[0].Name)
	assert.True(t, views[0].AcceptingOrders)
}

func TestPartnerService_SetState(t *testing.T) {
	t.Run("flips the state and saves", func(t *testing.T) {
		shops := new(MockShopRepository)
		service := NewPartnerService(shops, zap.NewNop())

		userID := uuid.New()
		shop, err := catalog.NewShop("Svyaznoy", &userID)
		require.NoError(t, err)

		shops.On("FindByUser", mock.Anything, userID).Return(shop, nil)
		shops.On("Save", mock.Anything, shop).Return(nil)

		result, err := service.SetState(context.Background(), userID, false)

		require.NoError(t, err)
		assert.False(t, result.AcceptingOrders)
		shops.AssertExpectations(t)
	})

	t.Run("setting the current state skips the save", func(t *testing.T) {
		shops := new(MockShopRepository)
		service := NewPartnerService(shops, zap.NewNop())

		userID := uuid.New()
		shop, err := catalog.NewShop("Svyaznoy", &userID)
		require.NoError(t, err)

		shops.On("FindByUser", mock.Anything, userID).Return(shop, nil)

		result, err := service.SetState(context.Background(), userID, true)

		require.NoError(t, err)
		assert.True(t, result.AcceptingOrders)
		shops.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails before the first import", func(t *testing.T) {
		shops := new(MockShopRepository)
		service := NewPartnerService(shops, zap.NewNop())

		userID := uuid.New()
		shops.On("FindByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		_, err := service.GetState(context.Background(), userID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "import a price list")
	})
}
