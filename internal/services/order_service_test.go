package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"bookwala/internal/models"
	"bookwala/internal/pricing"
	"bookwala/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	if order.ID == "" {
		order.ID = "order-1"
	}
	return args.Error(0)
}

func (m *MockOrderRepository) CreateItem(item *models.OrderItem) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByIDForUser(id, userID string) (*models.Order, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetItems(orderID string) ([]models.OrderItem, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderItem), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID string) ([]models.Order, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(page, limit int, status string) ([]models.Order, int64, error) {
	args := m.Called(page, limit, status)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) UpdateStatus(id string, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderCreated(orderData map[string]interface{}) error {
	args := m.Called(orderData)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

// checkoutItems is the mixed cart used across the checkout tests: one
// purchase (200 x 2) and one 6-month rental (300 x 1). Total works out to
// 490 + 88 tax + 50 shipping + 90 deposit = 718.
func checkoutItems() []pricing.LineItem {
	return []pricing.LineItem{
		{BookID: "book-1", UnitPrice: 200, Quantity: 2},
		{BookID: "book-2", UnitPrice: 300, Quantity: 1, Rental: true, TermMonths: 6},
	}
}

func testShipping() models.ShippingInfo {
	return models.ShippingInfo{
		Address: "12 Mukherjee Nagar",
		City:    "New Delhi",
		State:   "Delhi",
		Zip:     "110009",
		Country: "India",
	}
}

func TestOrderService_SubmitOrder_RequiresUser(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	order, err := service.SubmitOrder("", "cart-1", checkoutItems(), testShipping(), "cod", 718)
	assert.ErrorIs(t, err, services.ErrAuthRequired)
	assert.Nil(t, order)

	// No persistence call of any kind may happen without a user.
	mockOrders.AssertNotCalled(t, "Create", mock.Anything)
	mockCarts.AssertNotCalled(t, "ClearItems", mock.Anything)
}

func TestOrderService_SubmitOrder_RejectsMalformedItems(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	// Empty cart
	_, err := service.SubmitOrder("user-1", "cart-1", nil, testShipping(), "cod", 0)
	assert.ErrorIs(t, err, services.ErrValidation)

	// Missing book reference
	_, err = service.SubmitOrder("user-1", "cart-1", []pricing.LineItem{{UnitPrice: 100, Quantity: 1}}, testShipping(), "cod", 168)
	assert.ErrorIs(t, err, services.ErrValidation)

	// Non-positive quantity
	_, err = service.SubmitOrder("user-1", "cart-1", []pricing.LineItem{{BookID: "b", UnitPrice: 100, Quantity: 0}}, testShipping(), "cod", 50)
	assert.ErrorIs(t, err, services.ErrValidation)

	mockOrders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_SubmitOrder_RejectsTotalMismatch(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	// Client claims 700 but the engine computes 718.
	order, err := service.SubmitOrder("user-1", "cart-1", checkoutItems(), testShipping(), "cod", 700)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "does not match")
	assert.Nil(t, order)
	mockOrders.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_SubmitOrder_Success(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	mockMQ := new(MockPublisher)
	service := services.NewOrderService(mockOrders, mockCarts, mockMQ)

	var createdLines []*models.OrderItem
	mockOrders.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockOrders.On("CreateItem", mock.AnythingOfType("*models.OrderItem")).Run(func(args mock.Arguments) {
		createdLines = append(createdLines, args.Get(0).(*models.OrderItem))
	}).Return(nil).Twice()
	mockCarts.On("ClearItems", "cart-1").Return(nil).Once()
	mockMQ.On("PublishOrderCreated", mock.Anything).Return(nil).Once()

	persisted := &models.Order{ID: "order-1", UserID: "user-1", Status: models.OrderStatusPending, TotalAmount: 718}
	mockOrders.On("GetByID", "order-1").Return(persisted, nil).Once()

	order, err := service.SubmitOrder("user-1", "cart-1", checkoutItems(), testShipping(), "cod", 718)
	assert.NoError(t, err)
	assert.Equal(t, persisted, order)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// One frozen line per cart item, prices captured at order time.
	assert.Len(t, createdLines, 2)
	purchase, rental := createdLines[0], createdLines[1]
	assert.Equal(t, "book-1", purchase.BookID)
	assert.Equal(t, 200.0, purchase.Price)
	assert.False(t, purchase.IsRental)
	assert.Nil(t, purchase.RentalEndDate)

	assert.Equal(t, "book-2", rental.BookID)
	assert.True(t, rental.IsRental)
	assert.Equal(t, 180, rental.RentalPeriod) // 6 months x 30 days
	if assert.NotNil(t, rental.RentalEndDate) {
		expected := time.Now().AddDate(0, 0, 180)
		assert.WithinDuration(t, expected, *rental.RentalEndDate, time.Minute)
	}

	mockOrders.AssertExpectations(t)
	mockCarts.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestOrderService_SubmitOrder_PartialLineFailure(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	mockOrders.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	// First line fails, second goes in; the order must survive.
	mockOrders.On("CreateItem", mock.AnythingOfType("*models.OrderItem")).Return(fmt.Errorf("row level security violation")).Once()
	mockOrders.On("CreateItem", mock.AnythingOfType("*models.OrderItem")).Return(nil).Once()
	mockCarts.On("ClearItems", "cart-1").Return(nil).Once()
	mockOrders.On("GetByID", "order-1").Return(&models.Order{ID: "order-1", Status: models.OrderStatusPending}, nil).Once()

	order, err := service.SubmitOrder("user-1", "cart-1", checkoutItems(), testShipping(), "cod", 718)
	assert.ErrorIs(t, err, services.ErrPartialOrder)
	assert.NotNil(t, order, "the order header exists and must be returned")
	assert.Equal(t, "order-1", order.ID)

	mockOrders.AssertExpectations(t)
	mockCarts.AssertExpectations(t)
}

func TestOrderService_SubmitOrder_CartClearFailureIsNonFatal(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	mockOrders.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockOrders.On("CreateItem", mock.AnythingOfType("*models.OrderItem")).Return(nil).Twice()
	mockCarts.On("ClearItems", "cart-1").Return(fmt.Errorf("connection reset")).Once()
	mockOrders.On("GetByID", "order-1").Return(&models.Order{ID: "order-1", Status: models.OrderStatusPending}, nil).Once()

	order, err := service.SubmitOrder("user-1", "cart-1", checkoutItems(), testShipping(), "cod", 718)
	assert.NoError(t, err, "a failed cart clear never fails the checkout")
	assert.NotNil(t, order)

	mockOrders.AssertExpectations(t)
	mockCarts.AssertExpectations(t)
}

func TestOrderService_SubmitOrder_RefetchFailureReturnsCreatedOrder(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	mockOrders.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockOrders.On("CreateItem", mock.AnythingOfType("*models.OrderItem")).Return(nil).Twice()
	mockCarts.On("ClearItems", "cart-1").Return(nil).Once()
	mockOrders.On("GetByID", "order-1").Return(nil, fmt.Errorf("read timeout")).Once()

	order, err := service.SubmitOrder("user-1", "cart-1", checkoutItems(), testShipping(), "cod", 718)
	assert.NoError(t, err, "a failed re-fetch never fails the checkout")
	assert.NotNil(t, order)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, 718.0, order.TotalAmount)

	mockOrders.AssertExpectations(t)
}

func TestOrderService_SubmitOrder_SkipsCartClearWithoutCartID(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	items := []pricing.LineItem{{BookID: "book-1", UnitPrice: 599, Quantity: 1}}
	mockOrders.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()
	mockOrders.On("CreateItem", mock.AnythingOfType("*models.OrderItem")).Return(nil).Once()
	mockOrders.On("GetByID", "order-1").Return(&models.Order{ID: "order-1"}, nil).Once()

	_, err := service.SubmitOrder("user-1", "", items, testShipping(), "card", 707)
	assert.NoError(t, err)
	mockCarts.AssertNotCalled(t, "ClearItems", mock.Anything)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	expected := []models.Order{{ID: "order-2"}, {ID: "order-1"}}
	mockOrders.On("ListByUser", "user-1").Return(expected, nil).Once()

	orders, err := service.GetUserOrders("user-1")
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)

	_, err = service.GetUserOrders("")
	assert.ErrorIs(t, err, services.ErrAuthRequired)
	mockOrders.AssertExpectations(t)
}

func TestOrderService_GetOrderDetails(t *testing.T) {
	mockOrders := new(MockOrderRepository)
	mockCarts := new(MockCartRepository)
	service := services.NewOrderService(mockOrders, mockCarts, nil)

	expectedOrder := &models.Order{ID: "order-1", UserID: "user-1"}
	expectedItems := []models.OrderItem{{ID: "line-1", OrderID: "order-1"}}
	mockOrders.On("GetByIDForUser", "order-1", "user-1").Return(expectedOrder, nil).Once()
	mockOrders.On("GetItems", "order-1").Return(expectedItems, nil).Once()

	order, items, err := service.GetOrderDetails("order-1", "user-1")
	assert.NoError(t, err)
	assert.Equal(t, expectedOrder, order)
	assert.Equal(t, expectedItems, items)

	// Another user's order is simply not found.
	mockOrders.On("GetByIDForUser", "order-1", "user-2").Return(nil, fmt.Errorf("order with ID order-1 not found")).Once()
	_, _, err = service.GetOrderDetails("order-1", "user-2")
	assert.Error(t, err)
	mockOrders.AssertExpectations(t)
}
