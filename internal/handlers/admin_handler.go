package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"bookwala/internal/middleware"
	"bookwala/internal/models"
	"bookwala/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin panel HTTP surface: dashboard stats, book
// management, order management, resell moderation, and the user list. Every
// route requires an admin token.
type AdminHandler struct {
	adminService *services.AdminService
	bookService  *services.BookService
	userService  *services.UserService
	authService  *services.AuthService
	validate     *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService, bookService *services.BookService, userService *services.UserService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		bookService:  bookService,
		userService:  userService,
		authService:  authService,
		validate:     validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin", middleware.AuthRequired(h.authService), middleware.AdminRequired())
	adminRoutes.Get("/stats", h.HandleDashboardStats)

	adminRoutes.Post("/books", h.HandleCreateBook)
	adminRoutes.Put("/books/:id", h.HandleUpdateBook)
	adminRoutes.Delete("/books/:id", h.HandleDeleteBook)

	adminRoutes.Get("/orders", h.HandleListOrders)
	adminRoutes.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)

	adminRoutes.Get("/resell-requests", h.HandleListResellRequests)
	adminRoutes.Patch("/resell-requests/:id/status", h.HandleUpdateResellStatus)

	adminRoutes.Get("/users", h.HandleListProfiles)
}

// HandleDashboardStats returns the dashboard counters.
func (h *AdminHandler) HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		log.Printf("Error getting dashboard stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve dashboard stats",
			"error":   err.Error(),
		})
	}
	return c.JSON(stats)
}

// HandleCreateBook adds a book to the catalog.
func (h *AdminHandler) HandleCreateBook(c *fiber.Ctx) error {
	var book models.Book
	if err := c.BodyParser(&book); err != nil {
		log.Printf("Error parsing book body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(book); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.bookService.CreateBook(&book); err != nil {
		log.Printf("Error creating book: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create book",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// HandleUpdateBook replaces a book's catalog entry.
func (h *AdminHandler) HandleUpdateBook(c *fiber.Ctx) error {
	var book models.Book
	if err := c.BodyParser(&book); err != nil {
		log.Printf("Error parsing book body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	book.ID = c.Params("id")

	if err := h.validate.Struct(book); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	if err := h.bookService.UpdateBook(&book); err != nil {
		log.Printf("Error updating book %s: %v", book.ID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Book with ID %s not found", book.ID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update book",
			"error":   err.Error(),
		})
	}
	return c.JSON(book)
}

// HandleDeleteBook removes a book from the catalog.
func (h *AdminHandler) HandleDeleteBook(c *fiber.Ctx) error {
	bookID := c.Params("id")
	if err := h.bookService.DeleteBook(bookID); err != nil {
		log.Printf("Error deleting book %s: %v", bookID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Book with ID %s not found", bookID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete book",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"message": "Book deleted"})
}

// HandleListOrders returns a page of all orders, optionally filtered by
// status.
func (h *AdminHandler) HandleListOrders(c *fiber.Ctx) error {
	orders, count, err := h.adminService.ListOrders(c.QueryInt("page", 1), c.QueryInt("limit", 10), c.Query("status"))
	if err != nil {
		log.Printf("Error listing orders: %v", err)
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid order filter",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"orders": orders, "count": count})
}

// StatusUpdateRequest represents a status-change request body.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// HandleUpdateOrderStatus moves an order through its lifecycle. Invalid
// transitions are rejected.
func (h *AdminHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}

	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Status is required for order status update.",
		})
	}

	if err := h.adminService.UpdateOrderStatus(orderID, req.Status); err != nil {
		log.Printf("Error updating order status for order %s: %v", orderID, err)
		switch {
		case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order status update rejected",
				"error":   err.Error(),
			})
		case strings.Contains(err.Error(), "not found"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Order with ID %s not found", orderID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, req.Status),
	})
}

// HandleListResellRequests returns a page of resell requests.
func (h *AdminHandler) HandleListResellRequests(c *fiber.Ctx) error {
	requests, count, err := h.adminService.ListResellRequests(c.QueryInt("page", 1), c.QueryInt("limit", 10), c.Query("status"))
	if err != nil {
		log.Printf("Error listing resell requests: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve resell requests",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"requests": requests, "count": count})
}

// HandleUpdateResellStatus moderates a resell request.
func (h *AdminHandler) HandleUpdateResellStatus(c *fiber.Ctx) error {
	requestID := c.Params("id")
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing resell status body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.adminService.UpdateResellRequestStatus(requestID, req.Status); err != nil {
		log.Printf("Error updating resell request %s: %v", requestID, err)
		switch {
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Resell status update rejected",
				"error":   err.Error(),
			})
		case strings.Contains(err.Error(), "not found"):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Resell request with ID %s not found", requestID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update resell request",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Resell request %s status updated to %s", requestID, req.Status),
	})
}

// HandleListProfiles returns every user profile.
func (h *AdminHandler) HandleListProfiles(c *fiber.Ctx) error {
	profiles, err := h.userService.ListProfiles()
	if err != nil {
		log.Printf("Error listing profiles: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"users": profiles})
}
