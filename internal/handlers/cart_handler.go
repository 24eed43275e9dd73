package handlers

import (
	"errors"
	"log"
	"strings"

	"bookwala/internal/middleware"
	"bookwala/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the shopping cart. All routes
// require authentication.
type CartHandler struct {
	service     *services.CartService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, authService *services.AuthService) *CartHandler {
	return &CartHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart", middleware.AuthRequired(h.authService))
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:id", h.HandleUpdateQuantity)
	cartRoutes.Delete("/items/:id", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the caller's cart with items, books, and the price
// breakdown.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	view, err := h.service.GetCartView(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting cart: %v", err)
		return cartError(c, err, "Could not retrieve cart")
	}
	return c.JSON(view)
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	BookID       string `json:"book_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"omitempty,gte=1,lte=10"`
	IsRental     bool   `json:"is_rental"`
	RentalPeriod int    `json:"rental_period" validate:"omitempty,gte=0"` // days
}

// HandleAddItem adds a book to the cart, merging quantity with an existing
// line for the same book and kind.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	item, err := h.service.AddToCart(middleware.UserID(c), req.BookID, req.Quantity, req.IsRental, req.RentalPeriod)
	if err != nil {
		log.Printf("Error adding item to cart: %v", err)
		return cartError(c, err, "Could not add item to cart")
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateQuantityRequest represents the request body for a quantity change.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// HandleUpdateQuantity sets a cart line's quantity (clamped to 1..10).
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req UpdateQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing quantity request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateQuantity(c.Params("id"), req.Quantity); err != nil {
		log.Printf("Error updating cart item quantity: %v", err)
		return cartError(c, err, "Could not update quantity")
	}
	return c.JSON(fiber.Map{"message": "Quantity updated"})
}

// HandleRemoveItem deletes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	if err := h.service.RemoveItem(c.Params("id")); err != nil {
		log.Printf("Error removing cart item: %v", err)
		return cartError(c, err, "Could not remove item")
	}
	return c.JSON(fiber.Map{"message": "Item removed from cart"})
}

// HandleClearCart empties the caller's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart, err := h.service.GetOrCreateCart(middleware.UserID(c))
	if err != nil {
		log.Printf("Error resolving cart for clear: %v", err)
		return cartError(c, err, "Could not clear cart")
	}
	if err := h.service.ClearCart(cart.ID); err != nil {
		log.Printf("Error clearing cart %s: %v", cart.ID, err)
		return cartError(c, err, "Could not clear cart")
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}

// cartError maps service errors to HTTP responses.
func cartError(c *fiber.Ctx, err error, message string) error {
	switch {
	case errors.Is(err, services.ErrAuthRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication required",
		})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	case strings.Contains(err.Error(), "not found"):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": message,
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
