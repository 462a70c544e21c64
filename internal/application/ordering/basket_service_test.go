package ordering

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
	"github.com/retailorders/backend/internal/domain/identity"
	"github.com/retailorders/backend/internal/domain/ordering"
	"github.com/retailorders/backend/internal/domain/shared"
)

// MockOrderRepository is a mock implementation of ordering.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CurrentBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, shared.UpsertOutcome, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*ordering.Order), args.Get(1).(shared.UpsertOutcome), args.Error(2)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ordering.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]*ordering.Order, int64, error) {
	args := m.Called(ctx, shopID, filter)
	return args.Get(0).([]*ordering.Order), args.Get(1).(int64), args.Error(2)
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

// MockContactRepository is a mock implementation of identity.ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, contact *identity.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Update(ctx context.Context, contact *identity.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*identity.Contact, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*identity.Contact), args.Error(1)
}

func (m *MockContactRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func testListing(t *testing.T, price int64) *catalog.Listing {
	t.Helper()

	shop, err := catalog.NewShop("Svyaznoy", nil)
	require.NoError(t, err)
	product, err := catalog.NewProduct("Smartphone Apple iPhone XS 512GB", uuid.New())
	require.NoError(t, err)

	listing, err := catalog.NewListing(shop.ID, product.ID, 4216292, 14,
		decimal.NewFromInt(price), decimal.NewFromInt(price))
	require.NoError(t, err)
	listing.Shop = shop
	listing.Product = product
	return listing
}

func TestBasketService_GetBasket(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewBasketService(orders, new(MockListingRepository), zap.NewNop())

	userID := uuid.New()
	basket, err := ordering.NewBasket(userID)
	require.NoError(t, err)
	listing := testListing(t, 110000)
	require.NoError(t, basket.AddLine(listing.ID, 2))
	basket.Lines[0].Listing = listing

	orders.On("CurrentBasket", mock.Anything, userID).
		Return(basket, shared.AlreadyExisted, nil)

	view, err := service.GetBasket(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStatusBasket, view.Status)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Smartphone Apple iPhone XS 512GB", view.Lines[0].Product)
	assert.True(t, decimal.NewFromInt(220000).Equal(view.Total))
}

func TestBasketService_AddLines(t *testing.T) {
	t.Run("reports each line on its own", func(t *testing.T) {
		orders := new(MockOrderRepository)
		listings := new(MockListingRepository)
		service := NewBasketService(orders, listings, zap.NewNop())

		userID := uuid.New()
		basket, err := ordering.NewBasket(userID)
		require.NoError(t, err)

		known := testListing(t, 110000)
		duplicate := testListing(t, 5000)
		require.NoError(t, basket.AddLine(duplicate.ID, 1))
		basket.Lines[0].Listing = duplicate
		missingID := uuid.New()

		orders.On("CurrentBasket", mock.Anything, userID).
			Return(basket, shared.AlreadyExisted, nil)
		listings.On("FindByIDs", mock.Anything, mock.Anything).
			Return([]*catalog.Listing{known, duplicate}, nil)
		orders.On("Save", mock.Anything, basket).Return(nil)

		results, err := service.AddLines(context.Background(), userID, []AddLineInput{
			{ListingID: known.ID, Quantity: 2},
			{ListingID: duplicate.ID, Quantity: 1},
			{ListingID: missingID, Quantity: 1},
		})

		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.True(t, results[0].Added)
		assert.NotEqual(t, uuid.Nil, results[0].LineID)

		assert.False(t, results[1].Added)
		assert.Contains(t, results[1].Error, "already in the basket")

		assert.False(t, results[2].Added)
		assert.Contains(t, results[2].Error, "not found")

		orders.AssertExpectations(t)
	})

	t.Run("nothing added skips the save", func(t *testing.T) {
		orders := new(MockOrderRepository)
		listings := new(MockListingRepository)
		service := NewBasketService(orders, listings, zap.NewNop())

		userID := uuid.New()
		basket, err := ordering.NewBasket(userID)
		require.NoError(t, err)

		orders.On("CurrentBasket", mock.Anything, userID).
			Return(basket, shared.Created, nil)
		listings.On("FindByIDs", mock.Anything, mock.Anything).
			Return([]*catalog.Listing{}, nil)

		results, err := service.AddLines(context.Background(), userID, []AddLineInput{
			{ListingID: uuid.New(), Quantity: 1},
		})

		require.NoError(t, err)
		assert.False(t, results[0].Added)
		orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		service := NewBasketService(new(MockOrderRepository), new(MockListingRepository), zap.NewNop())

		_, err := service.AddLines(context.Background(), uuid.New(), nil)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "No lines")
	})
}

func TestBasketService_UpdateQuantities(t *testing.T) {
	orders := new(MockOrderRepository)
	service := NewBasketService(orders, new(MockListingRepository), zap.NewNop())

	userID := uuid.New()
	basket, err := ordering.NewBasket(userID)
	require.NoError(t, err)
	listing := testListing(t, 110000)
	require.NoError(t, basket.AddLine(listing.ID, 2))
	lineID := basket.Lines[0].ID

	orders.On("CurrentBasket", mock.Anything, userID).
		Return(basket, shared.AlreadyExisted, nil)
	orders.On("Save", mock.Anything, basket).Return(nil)

	updated, err := service.UpdateQuantities(context.Background(), userID, []LineQuantityInput{
		{LineID: lineID, Quantity: 5},
		{LineID: uuid.New(), Quantity: 3}, // unknown id, skipped
	})

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 5, basket.Lines[0].Quantity)
	orders.AssertExpectations(t)
}

func TestBasketService_RemoveLines(t *testing.T) {
	t.Run("removes owned lines", func(t *testing.T) {
		orders := new(MockOrderRepository)
		service := NewBasketService(orders, new(MockListingRepository), zap.NewNop())

		userID := uuid.New()
		basket, err := ordering.NewBasket(userID)
		require.NoError(t, err)
		listing := testListing(t, 110000)
		require.NoError(t, basket.AddLine(listing.ID, 2))
		lineID := basket.Lines[0].ID

		orders.On("CurrentBasket", mock.Anything, userID).
			Return(basket, shared.AlreadyExisted, nil)
		orders.On("Save", mock.Anything, basket).Return(nil)

		removed, err := service.RemoveLines(context.Background(), userID, []uuid.UUID{lineID, uuid.New()})

		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		assert.Empty(t, basket.Lines)
	})

	t.Run("a brand new basket has nothing to remove", func(t *testing.T) {
		orders := new(MockOrderRepository)
		service := NewBasketService(orders, new(MockListingRepository), zap.NewNop())

		userID := uuid.New()
		basket, err := ordering.NewBasket(userID)
		require.NoError(t, err)

		orders.On("CurrentBasket", mock.Anything, userID).
			Return(basket, shared.Created, nil)

		removed, err := service.RemoveLines(context.Background(), userID, []uuid.UUID{uuid.New()})

		require.NoError(t, err)
		assert.Zero(t, removed)
		orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
