package handlers

import (
	"errors"
	"log"
	"strings"

	"bookwala/internal/middleware"
	"bookwala/internal/models"
	"bookwala/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for checkout and order history. All
// routes require authentication.
type OrderHandler struct {
	orderService *services.OrderService
	cartService  *services.CartService
	authService  *services.AuthService
	validate     *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, cartService *services.CartService, authService *services.AuthService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		cartService:  cartService,
		authService:  authService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders", middleware.AuthRequired(h.authService))
	orderRoutes.Get("/", h.HandleGetMyOrders)
	orderRoutes.Get("/quote", h.HandleQuote)
	orderRoutes.Get("/:id", h.HandleGetOrderDetails)
	orderRoutes.Post("/", h.HandleCheckout)
}

// HandleQuote prices the caller's current cart without placing an order. The
// client shows this breakdown on the checkout page and echoes the total back
// on submit.
func (h *OrderHandler) HandleQuote(c *fiber.Ctx) error {
	view, err := h.cartService.GetCartView(middleware.UserID(c))
	if err != nil {
		log.Printf("Error loading cart for quote: %v", err)
		return orderError(c, err, "Could not price cart")
	}
	return c.JSON(h.orderService.Quote(view.LineItems()))
}

// CheckoutRequest represents the request body for placing an order. The
// client echoes the total it displayed; the engine re-verifies it.
type CheckoutRequest struct {
	ShippingInfo  models.ShippingInfo `json:"shipping_info" validate:"required"`
	PaymentMethod string              `json:"payment_method" validate:"required"`
	TotalAmount   float64             `json:"total_amount" validate:"required,gt=0"`
}

// HandleCheckout turns the caller's cart into an order.
func (h *OrderHandler) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	userID := middleware.UserID(c)
	view, err := h.cartService.GetCartView(userID)
	if err != nil {
		log.Printf("Error loading cart for checkout: %v", err)
		return orderError(c, err, "Could not load cart for checkout")
	}

	order, err := h.orderService.SubmitOrder(userID, view.Cart.ID, view.LineItems(), req.ShippingInfo, req.PaymentMethod, req.TotalAmount)
	if err != nil {
		// A partial order is a success with a warning: the header exists and
		// the customer should see their confirmation.
		if errors.Is(err, services.ErrPartialOrder) {
			log.Printf("Warning: partial order %s: %v", order.ID, err)
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"order":   order,
				"warning": err.Error(),
			})
		}
		log.Printf("Error creating order: %v", err)
		return orderError(c, err, "Could not create order")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": order})
}

// HandleGetMyOrders lists the caller's orders, newest first.
func (h *OrderHandler) HandleGetMyOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.GetUserOrders(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting user orders: %v", err)
		return orderError(c, err, "Could not retrieve orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}

// HandleGetOrderDetails returns one of the caller's orders with its lines.
func (h *OrderHandler) HandleGetOrderDetails(c *fiber.Ctx) error {
	order, items, err := h.orderService.GetOrderDetails(c.Params("id"), middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting order details: %v", err)
		return orderError(c, err, "Could not retrieve order")
	}
	return c.JSON(fiber.Map{"order": order, "items": items})
}

// orderError maps service errors to HTTP responses.
func orderError(c *fiber.Ctx, err error, message string) error {
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
