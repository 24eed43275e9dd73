package services

import (
	"fmt"
	"log"

	"bookwala/internal/models"
	"bookwala/internal/repositories"
)

// DashboardStats are the counters shown on the admin dashboard.
type DashboardStats struct {
	BookCount     int64 `json:"book_count"`
	CategoryCount int64 `json:"category_count"`
	OrderCount    int64 `json:"order_count"`
	ResellCount   int64 `json:"resell_count"`
}

// AdminService handles order management, resell moderation, and dashboard
// statistics.
type AdminService struct {
	bookRepo   repositories.BookRepository
	orderRepo  repositories.OrderRepository
	resellRepo repositories.ResellRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(bookRepo repositories.BookRepository, orderRepo repositories.OrderRepository, resellRepo repositories.ResellRepository) *AdminService {
	return &AdminService{
		bookRepo:   bookRepo,
		orderRepo:  orderRepo,
		resellRepo: resellRepo,
	}
}

// GetDashboardStats gathers the dashboard counters. Each count is fetched
// independently; a failed counter logs and reports zero rather than failing
// the dashboard.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	if count, err := s.bookRepo.Count(); err != nil {
		log.Printf("Warning: failed to count books for dashboard: %v", err)
	} else {
		stats.BookCount = count
	}
	if categories, err := s.bookRepo.Categories(); err != nil {
		log.Printf("Warning: failed to count categories for dashboard: %v", err)
	} else {
		stats.CategoryCount = int64(len(categories))
	}
	if count, err := s.orderRepo.Count(); err != nil {
		log.Printf("Warning: failed to count orders for dashboard: %v", err)
	} else {
		stats.OrderCount = count
	}
	if count, err := s.resellRepo.Count(); err != nil {
		log.Printf("Warning: failed to count resell requests for dashboard: %v", err)
	} else {
		stats.ResellCount = count
	}
	return stats, nil
}

// ListOrders retrieves a page of orders, optionally filtered by status.
func (s *AdminService) ListOrders(page, limit int, status string) ([]models.Order, int64, error) {
	if status != "" && !models.IsValidOrderStatus(status) {
		return nil, 0, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	return s.orderRepo.List(page, limit, status)
}

// UpdateOrderStatus moves an order to a new status, enforcing the lifecycle:
// pending may become processing or cancelled, processing may become shipped
// or cancelled, shipped may become delivered. Anything else is rejected.
func (s *AdminService) UpdateOrderStatus(id, status string) error {
	if !models.IsValidOrderStatus(status) {
		return fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !models.CanTransitionOrderStatus(order.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}
	return nil
}

// ListResellRequests retrieves a page of resell requests, optionally filtered
// by status.
func (s *AdminService) ListResellRequests(page, limit int, status string) ([]models.ResellRequest, int64, error) {
	return s.resellRepo.List(page, limit, status)
}

// UpdateResellRequestStatus moderates a resell request.
func (s *AdminService) UpdateResellRequestStatus(id, status string) error {
	switch status {
	case models.ResellStatusPending, models.ResellStatusApproved, models.ResellStatusRejected:
	default:
		return fmt.Errorf("%w: unknown resell status %q", ErrValidation, status)
	}
	return s.resellRepo.UpdateStatus(id, status)
}
