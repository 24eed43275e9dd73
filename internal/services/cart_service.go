package services

import (
	"fmt"
	"log"
	"time"

	"bookwala/internal/models"
	"bookwala/internal/pricing"
	"bookwala/internal/repositories"
)

// Quantity bounds for a single cart line.
const (
	MinItemQuantity = 1
	MaxItemQuantity = 10
)

// clampQuantity forces a quantity into [MinItemQuantity, MaxItemQuantity].
func clampQuantity(q int) int {
	if q < MinItemQuantity {
		return MinItemQuantity
	}
	if q > MaxItemQuantity {
		return MaxItemQuantity
	}
	return q
}

// CartView is a cart's contents joined with book data, plus the computed
// price breakdown shown in the cart summary.
type CartView struct {
	Cart  models.Cart    `json:"cart"`
	Items []CartViewItem `json:"items"`
	Quote pricing.Quote  `json:"quote"`
}

// CartViewItem is one cart line with its book attached.
type CartViewItem struct {
	models.CartItem
	Book models.Book `json:"book"`
}

// CartService handles cart retrieval and mutation.
type CartService struct {
	cartRepo repositories.CartRepository
	bookRepo repositories.BookRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, bookRepo repositories.BookRepository) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// GetOrCreateCart returns the user's cart, creating it on first use.
func (s *CartService) GetOrCreateCart(userID string) (*models.Cart, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	cart, err := s.cartRepo.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	cart = &models.Cart{UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	if createErr := s.cartRepo.Create(cart); createErr != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, createErr)
	}
	return cart, nil
}

// GetCartView returns the cart with its items joined to books and priced.
// A line whose book has disappeared is skipped with a warning rather than
// sinking the whole view.
func (s *CartService) GetCartView(userID string) (*CartView, error) {
	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.GetItems(cart.ID)
	if err != nil {
		return nil, err
	}

	view := &CartView{Cart: *cart, Items: make([]CartViewItem, 0, len(items))}
	lineItems := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		book, err := s.bookRepo.GetByID(item.BookID)
		if err != nil {
			log.Printf("Warning: cart %s references missing book %s: %v", cart.ID, item.BookID, err)
			continue
		}
		view.Items = append(view.Items, CartViewItem{CartItem: item, Book: *book})
		lineItems = append(lineItems, pricing.LineItem{
			BookID:     item.BookID,
			UnitPrice:  book.Price,
			Quantity:   item.Quantity,
			Rental:     item.IsRental,
			TermMonths: item.RentalTermMonths(),
		})
	}
	view.Quote = pricing.NewQuote(lineItems)
	return view, nil
}

// LineItems converts a cart view into the engine's line items, used by
// checkout.
func (v *CartView) LineItems() []pricing.LineItem {
	lineItems := make([]pricing.LineItem, 0, len(v.Items))
	for _, item := range v.Items {
		lineItems = append(lineItems, pricing.LineItem{
			BookID:     item.BookID,
			UnitPrice:  item.Book.Price,
			Quantity:   item.Quantity,
			Rental:     item.IsRental,
			TermMonths: item.RentalTermMonths(),
		})
	}
	return lineItems
}

// AddToCart adds a book to the user's cart. When a line for the same book and
// kind already exists, quantities merge instead of duplicating the line.
// rentalPeriodDays is zero for purchases.
func (s *CartService) AddToCart(userID, bookID string, quantity int, isRental bool, rentalPeriodDays int) (*models.CartItem, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if bookID == "" {
		return nil, fmt.Errorf("%w: book reference is required", ErrValidation)
	}
	if _, err := s.bookRepo.GetByID(bookID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cart, err := s.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}

	quantity = clampQuantity(quantity)

	existing, err := s.cartRepo.FindItem(cart.ID, bookID, isRental)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		merged := clampQuantity(existing.Quantity + quantity)
		if err := s.cartRepo.UpdateItemQuantity(existing.ID, merged); err != nil {
			return nil, err
		}
		existing.Quantity = merged
		return existing, nil
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		BookID:    bookID,
		Quantity:  quantity,
		IsRental:  isRental,
		CreatedAt: time.Now(),
	}
	if isRental {
		item.RentalPeriod = rentalPeriodDays
	}
	if err := s.cartRepo.AddItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets a cart line's quantity, clamped to the allowed range.
func (s *CartService) UpdateQuantity(itemID string, quantity int) error {
	if itemID == "" {
		return fmt.Errorf("%w: cart item ID is required", ErrValidation)
	}
	return s.cartRepo.UpdateItemQuantity(itemID, clampQuantity(quantity))
}

// RemoveItem deletes a single line from the cart.
func (s *CartService) RemoveItem(itemID string) error {
	if itemID == "" {
		return fmt.Errorf("%w: cart item ID is required", ErrValidation)
	}
	return s.cartRepo.RemoveItem(itemID)
}

// ClearCart empties the cart. The cart row itself survives.
func (s *CartService) ClearCart(cartID string) error {
	if cartID == "" {
		return fmt.Errorf("%w: cart ID is required", ErrValidation)
	}
	return s.cartRepo.ClearItems(cartID)
}
