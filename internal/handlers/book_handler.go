package handlers

import (
	"errors"
	"log"
	"strings"

	"bookwala/internal/middleware"
	"bookwala/internal/repositories"
	"bookwala/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BookHandler handles HTTP requests for the catalog, reviews, and
// testimonials.
type BookHandler struct {
	service     *services.BookService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(service *services.BookService, authService *services.AuthService) *BookHandler {
	return &BookHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *BookHandler) RegisterRoutes(router fiber.Router) {
	bookRoutes := router.Group("/books")
	bookRoutes.Get("/", h.HandleListBooks)
	bookRoutes.Get("/featured", h.HandleFeaturedBooks)
	bookRoutes.Get("/categories", h.HandleCategories)
	bookRoutes.Get("/:id", h.HandleGetBookByID)
	bookRoutes.Post("/:id/reviews", middleware.AuthRequired(h.authService), h.HandleSubmitReview)

	router.Get("/testimonials", h.HandleTestimonials)
}

// HandleListBooks retrieves a page of books with search, filter, and sort
// query parameters.
func (h *BookHandler) HandleListBooks(c *fiber.Ctx) error {
	params := repositories.ListBooksParams{
		Search:    c.Query("search"),
		Category:  c.Query("category"),
		SortBy:    c.Query("sort_by", "title"),
		SortOrder: c.Query("sort_order", "asc"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 10),
	}

	list, err := h.service.ListBooks(params)
	if err != nil {
		log.Printf("Error listing books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve books",
			"error":   err.Error(),
		})
	}
	return c.JSON(list)
}

// HandleGetBookByID retrieves a single book.
func (h *BookHandler) HandleGetBookByID(c *fiber.Ctx) error {
	bookID := c.Params("id")
	book, err := h.service.GetBookByID(bookID)
	if err != nil {
		log.Printf("Error getting book by ID %s: %v", bookID, err)
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Book not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve book",
			"error":   err.Error(),
		})
	}
	return c.JSON(book)
}

// HandleFeaturedBooks returns the top-rated books for the home page.
func (h *BookHandler) HandleFeaturedBooks(c *fiber.Ctx) error {
	list, err := h.service.GetFeaturedBooks()
	if err != nil {
		log.Printf("Error getting featured books: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve featured books",
			"error":   err.Error(),
		})
	}
	return c.JSON(list)
}

// HandleCategories returns every category with its book count.
func (h *BookHandler) HandleCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleTestimonials returns the featured testimonials.
func (h *BookHandler) HandleTestimonials(c *fiber.Ctx) error {
	testimonials, err := h.service.GetTestimonials()
	if err != nil {
		log.Printf("Error getting testimonials: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve testimonials",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"testimonials": testimonials})
}

// ReviewRequest represents the request body for submitting a review.
type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

// HandleSubmitReview records or replaces the caller's review of a book.
func (h *BookHandler) HandleSubmitReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing review request body: %v", err)
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

	review, err := h.service.SubmitReview(middleware.UserID(c), c.Params("id"), req.Rating, req.Comment)
	if err != nil {
		log.Printf("Error submitting review: %v", err)
		switch {
		case errors.Is(err, services.ErrAuthRequired):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		case errors.Is(err, services.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid review",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not submit review",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}
