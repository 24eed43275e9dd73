package models

import "time"

// Order statuses. An order is created as pending and moved through the
// lifecycle by admins; delivered and cancelled are terminal.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// orderTransitions is the set of allowed status moves.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionOrderStatus reports whether an order may move from one status
// to another.
func CanTransitionOrderStatus(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order represents a customer order.
type Order struct {
	ID              string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Status          string    `json:"status" gorm:"type:varchar(20)"`
	TotalAmount     float64   `json:"total_amount"`
	ShippingAddress string    `json:"shipping_address"`
	ShippingCity    string    `json:"shipping_city"`
	ShippingState   string    `json:"shipping_state"`
	ShippingZip     string    `json:"shipping_zip"`
	ShippingCountry string    `json:"shipping_country"`
	PaymentMethod   string    `json:"payment_method"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OrderItem is the frozen order line created from a cart item at checkout.
// Price is captured at order time and never re-derived. RentalPeriod is in
// days; RentalEndDate is set only for rentals.
type OrderItem struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID       string     `json:"order_id" gorm:"index;type:varchar(36)"`
	BookID        string     `json:"book_id" gorm:"type:varchar(36)"`
	Quantity      int        `json:"quantity"`
	Price         float64    `json:"price"`
	IsRental      bool       `json:"is_rental"`
	RentalPeriod  int        `json:"rental_period"`
	RentalEndDate *time.Time `json:"rental_end_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ShippingInfo is the delivery address collected at checkout.
type ShippingInfo struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zip     string `json:"zip" validate:"required"`
	Country string `json:"country" validate:"required"`
}
