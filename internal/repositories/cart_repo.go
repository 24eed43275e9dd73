package repositories

import (
	"bookwala/internal/models"
)

// CartRepository defines the interface for cart and cart-item data access.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	GetItems(cartID string) ([]models.CartItem, error)
	GetItemByID(itemID string) (*models.CartItem, error)
	FindItem(cartID, bookID string, isRental bool) (*models.CartItem, error)
	AddItem(item *models.CartItem) error
	UpdateItemQuantity(itemID string, quantity int) error
	RemoveItem(itemID string) error
	ClearItems(cartID string) error
}
