package services_test

import (
	"fmt"
	"testing"

	"bookwala/internal/models"
	"bookwala/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockResellRepository is a mock implementation of repositories.ResellRepository
type MockResellRepository struct {
	mock.Mock
}

func (m *MockResellRepository) Create(request *models.ResellRequest) error {
	args := m.Called(request)
	return args.Error(0)
}

func (m *MockResellRepository) List(page, limit int, status string) ([]models.ResellRequest, int64, error) {
	args := m.Called(page, limit, status)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.ResellRequest), args.Get(1).(int64), args.Error(2)
}

func (m *MockResellRepository) UpdateStatus(id string, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockResellRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func newAdminService() (*services.AdminService, *MockBookRepository, *MockOrderRepository, *MockResellRepository) {
	mockBooks := new(MockBookRepository)
	mockOrders := new(MockOrderRepository)
	mockResell := new(MockResellRepository)
	return services.NewAdminService(mockBooks, mockOrders, mockResell), mockBooks, mockOrders, mockResell
}

func TestAdminService_UpdateOrderStatus_AllowedTransitions(t *testing.T) {
	allowed := []struct{ from, to string }{
		{models.OrderStatusPending, models.OrderStatusProcessing},
		{models.OrderStatusPending, models.OrderStatusCancelled},
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusProcessing, models.OrderStatusCancelled},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}

	for _, tc := range allowed {
		service, _, mockOrders, _ := newAdminService()
		mockOrders.On("GetByID", "order-1").Return(&models.Order{ID: "order-1", Status: tc.from}, nil).Once()
		mockOrders.On("UpdateStatus", "order-1", tc.to).Return(nil).Once()

		err := service.UpdateOrderStatus("order-1", tc.to)
		assert.NoError(t, err, "%s -> %s should be allowed", tc.from, tc.to)
		mockOrders.AssertExpectations(t)
	}
}

func TestAdminService_UpdateOrderStatus_RejectsInvalidTransitions(t *testing.T) {
	rejected := []struct{ from, to string }{
		{models.OrderStatusDelivered, models.OrderStatusPending},
		{models.OrderStatusDelivered, models.OrderStatusProcessing},
		{models.OrderStatusCancelled, models.OrderStatusProcessing},
		{models.OrderStatusShipped, models.OrderStatusCancelled},
		{models.OrderStatusPending, models.OrderStatusShipped},
		{models.OrderStatusPending, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusPending},
	}

	for _, tc := range rejected {
		service, _, mockOrders, _ := newAdminService()
		mockOrders.On("GetByID", "order-1").Return(&models.Order{ID: "order-1", Status: tc.from}, nil).Once()

		err := service.UpdateOrderStatus("order-1", tc.to)
		assert.ErrorIs(t, err, services.ErrInvalidTransition, "%s -> %s must be rejected", tc.from, tc.to)
		mockOrders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	}
}

func TestAdminService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	service, _, mockOrders, _ := newAdminService()

	err := service.UpdateOrderStatus("order-1", "misplaced")
	assert.ErrorIs(t, err, services.ErrValidation)
	mockOrders.AssertNotCalled(t, "GetByID", mock.Anything)
}

func TestAdminService_UpdateOrderStatus_OrderNotFound(t *testing.T) {
	service, _, mockOrders, _ := newAdminService()

	mockOrders.On("GetByID", "missing").Return(nil, fmt.Errorf("order with ID missing not found")).Once()
	err := service.UpdateOrderStatus("missing", models.OrderStatusProcessing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	mockOrders.AssertExpectations(t)
}

func TestAdminService_ListOrders(t *testing.T) {
	service, _, mockOrders, _ := newAdminService()

	expected := []models.Order{{ID: "order-1", Status: models.OrderStatusPending}}
	mockOrders.On("List", 1, 10, models.OrderStatusPending).Return(expected, int64(1), nil).Once()

	orders, count, err := service.ListOrders(1, 10, models.OrderStatusPending)
	assert.NoError(t, err)
	assert.Equal(t, expected, orders)
	assert.Equal(t, int64(1), count)

	// Unknown status filters are rejected before hitting the store.
	_, _, err = service.ListOrders(1, 10, "refunded")
	assert.ErrorIs(t, err, services.ErrValidation)
	mockOrders.AssertExpectations(t)
}

func TestAdminService_GetDashboardStats(t *testing.T) {
	service, mockBooks, mockOrders, mockResell := newAdminService()

	mockBooks.On("Count").Return(int64(42), nil).Once()
	mockBooks.On("Categories").Return([]models.CategoryCount{{Name: "Fiction", Count: 30}, {Name: "History", Count: 12}}, nil).Once()
	mockOrders.On("Count").Return(int64(7), nil).Once()
	mockResell.On("Count").Return(int64(3), nil).Once()

	stats, err := service.GetDashboardStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(42), stats.BookCount)
	assert.Equal(t, int64(2), stats.CategoryCount)
	assert.Equal(t, int64(7), stats.OrderCount)
	assert.Equal(t, int64(3), stats.ResellCount)
}

func TestAdminService_GetDashboardStats_PartialFailure(t *testing.T) {
	service, mockBooks, mockOrders, mockResell := newAdminService()

	// A failed counter logs and zeroes, the rest of the dashboard survives.
	mockBooks.On("Count").Return(int64(0), fmt.Errorf("timeout")).Once()
	mockBooks.On("Categories").Return([]models.CategoryCount{}, nil).Once()
	mockOrders.On("Count").Return(int64(7), nil).Once()
	mockResell.On("Count").Return(int64(1), nil).Once()

	stats, err := service.GetDashboardStats()
	assert.NoError(t, err)
	assert.Equal(t, int64(0), stats.BookCount)
	assert.Equal(t, int64(7), stats.OrderCount)
}

func TestAdminService_UpdateResellRequestStatus(t *testing.T) {
	service, _, _, mockResell := newAdminService()

	mockResell.On("UpdateStatus", "req-1", models.ResellStatusApproved).Return(nil).Once()
	assert.NoError(t, service.UpdateResellRequestStatus("req-1", models.ResellStatusApproved))

	err := service.UpdateResellRequestStatus("req-1", "archived")
	assert.ErrorIs(t, err, services.ErrValidation)
	mockResell.AssertExpectations(t)
}
