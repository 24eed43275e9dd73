package models

import "time"

// Cart belongs to exactly one user. Items hang off it in the cart_items
// table; clearing the cart deletes the items, never the cart itself.
type Cart struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItem is a single line in a cart: a purchase or a rental of one book.
// RentalPeriod is stored in days, as the external cart_items table does.
type CartItem struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CartID       string    `json:"cart_id" gorm:"index;type:varchar(36)" validate:"required"`
	BookID       string    `json:"book_id" gorm:"type:varchar(36)" validate:"required"`
	Quantity     int       `json:"quantity" validate:"gte=1,lte=10"`
	IsRental     bool      `json:"is_rental"`
	RentalPeriod int       `json:"rental_period"` // days; zero for purchases
	CreatedAt    time.Time `json:"created_at"`
}

// RentalTermMonths converts the stored rental period to the term the pricing
// table is keyed by. Items persisted without a period default to the 3-month
// term, matching the storefront display behaviour.
func (i CartItem) RentalTermMonths() int {
	if !i.IsRental {
		return 0
	}
	if i.RentalPeriod <= 0 {
		return 3
	}
	months := i.RentalPeriod / 30
	if i.RentalPeriod%30 != 0 {
		months++
	}
	return months
}
