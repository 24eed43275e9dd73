package repositories

import (
	"bookwala/internal/models"
)

// OrderRepository defines the interface for order and order-line data access.
// Header, line, and status writes are individual calls; checkout stitches
// them together without a surrounding transaction.
type OrderRepository interface {
	Create(order *models.Order) error
	CreateItem(item *models.OrderItem) error
	GetByID(id string) (*models.Order, error)
	GetByIDForUser(id, userID string) (*models.Order, error)
	GetItems(orderID string) ([]models.OrderItem, error)
	ListByUser(userID string) ([]models.Order, error)
	List(page, limit int, status string) ([]models.Order, int64, error)
	UpdateStatus(id string, status string) error
	Count() (int64, error)
}
