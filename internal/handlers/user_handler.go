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

// UserHandler handles HTTP requests for profiles and resell requests.
type UserHandler struct {
	service     *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		service:     service,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the profile and resell routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profile", middleware.AuthRequired(h.authService))
	profileRoutes.Get("/", h.HandleGetProfile)
	profileRoutes.Put("/", h.HandleUpdateProfile)

	router.Post("/resell-requests", middleware.AuthRequired(h.authService), h.HandleSubmitResellRequest)
}

// HandleGetProfile returns the caller's profile.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting profile: %v", err)
		return userError(c, err, "Could not retrieve profile")
	}
	return c.JSON(profile)
}

// HandleUpdateProfile applies the caller's profile changes.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var update models.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	profile, err := h.service.UpdateProfile(middleware.UserID(c), update)
	if err != nil {
		log.Printf("Error updating profile: %v", err)
		return userError(c, err, "Could not update profile")
	}
	return c.JSON(profile)
}

// HandleSubmitResellRequest files a resell request for the caller.
func (h *UserHandler) HandleSubmitResellRequest(c *fiber.Ctx) error {
	var request models.ResellRequest
	if err := c.BodyParser(&request); err != nil {
		log.Printf("Error parsing resell request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationMessages(err),
		})
	}

	created, err := h.service.SubmitResellRequest(middleware.UserID(c), &request)
	if err != nil {
		log.Printf("Error submitting resell request: %v", err)
		return userError(c, err, "Could not submit resell request")
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// userError maps service errors to HTTP responses.
func userError(c *fiber.Ctx, err error, message string) error {
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
