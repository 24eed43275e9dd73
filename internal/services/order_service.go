package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"bookwala/internal/models"
	"bookwala/internal/pricing"
	"bookwala/internal/repositories"
)

// totalTolerance absorbs float noise when comparing the caller's total with
// the recomputed quote; amounts are whole-unit decimals, so a paisa of slack
// is plenty.
const totalTolerance = 0.01

// EventPublisher is the messaging surface the order flow needs. Satisfied by
// *rabbitmq.Client; nil disables publishing.
type EventPublisher interface {
	PublishOrderCreated(orderData map[string]interface{}) error
}

// OrderService handles checkout and order retrieval.
type OrderService struct {
	orderRepo repositories.OrderRepository
	cartRepo  repositories.CartRepository
	mqClient  EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, cartRepo repositories.CartRepository, mqClient EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		mqClient:  mqClient,
	}
}

// Quote prices a set of line items without any side effects.
func (s *OrderService) Quote(items []pricing.LineItem) pricing.Quote {
	return pricing.NewQuote(items)
}

// SubmitOrder turns the cart's line items into a persisted order.
//
// The flow deliberately mirrors the storefront's original behaviour: the
// header, each line, and the cart clear are independent store calls with no
// rollback. A failed line is logged and skipped (the result is ErrPartialOrder,
// with the order still returned); a failed cart clear or re-fetch never fails
// the checkout. The one hardening on top of the original: the caller's total
// is cross-checked against a recomputed quote and a mismatch is rejected
// before anything is written.
func (s *OrderService) SubmitOrder(userID, cartID string, items []pricing.LineItem, shipping models.ShippingInfo, paymentMethod string, totalAmount float64) (*models.Order, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrValidation)
	}
	for _, item := range items {
		if item.BookID == "" {
			return nil, fmt.Errorf("%w: line item is missing a book reference", ErrValidation)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: line item quantity must be at least 1", ErrValidation)
		}
	}

	quote := pricing.NewQuote(items)
	if math.Abs(quote.Total-totalAmount) > totalTolerance {
		return nil, fmt.Errorf("%w: submitted total %.2f does not match computed total %.2f", ErrValidation, totalAmount, quote.Total)
	}

	order := &models.Order{
		UserID:          userID,
		Status:          models.OrderStatusPending,
		TotalAmount:     quote.Total,
		ShippingAddress: shipping.Address,
		ShippingCity:    shipping.City,
		ShippingState:   shipping.State,
		ShippingZip:     shipping.Zip,
		ShippingCountry: shipping.Country,
		PaymentMethod:   paymentMethod,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Materialize one frozen line per cart item. Lines are inserted
	// independently; a failure is logged and the remaining lines still go in.
	failedLines := 0
	for _, item := range items {
		line := &models.OrderItem{
			OrderID:   order.ID,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
			IsRental:  item.Rental,
			CreatedAt: time.Now(),
		}
		if item.Rental {
			line.RentalPeriod = item.TermMonths * 30
			endDate := order.CreatedAt.AddDate(0, 0, line.RentalPeriod)
			line.RentalEndDate = &endDate
		}
		if err := s.orderRepo.CreateItem(line); err != nil {
			log.Printf("Warning: failed to add line for book %s to order %s: %v", item.BookID, order.ID, err)
			failedLines++
		}
	}

	// Cart reset after a successful order. Not fatal if it fails.
	if cartID != "" {
		if err := s.cartRepo.ClearItems(cartID); err != nil {
			log.Printf("Warning: failed to clear cart %s after order %s: %v", cartID, order.ID, err)
		}
	}

	s.publishOrderCreated(order)

	// Return the persisted row; fall back to the object we just built rather
	// than failing checkout over a read.
	result := order
	if fetched, err := s.orderRepo.GetByID(order.ID); err != nil {
		log.Printf("Warning: failed to re-fetch order %s: %v", order.ID, err)
	} else {
		result = fetched
	}

	if failedLines > 0 {
		return result, fmt.Errorf("%w: %d of %d lines failed", ErrPartialOrder, failedLines, len(items))
	}
	return result, nil
}

// publishOrderCreated emits the order.created event, best-effort.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}
	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"status":  order.Status,
		"total":   order.TotalAmount,
	}
	if err := s.mqClient.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	} else {
		log.Printf("Successfully published order created event for order %s", order.ID)
	}
}

// GetUserOrders retrieves a user's orders, newest first.
func (s *OrderService) GetUserOrders(userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.orderRepo.ListByUser(userID)
}

// GetOrderDetails retrieves an order and its lines, checking ownership.
func (s *OrderService) GetOrderDetails(orderID, userID string) (*models.Order, []models.OrderItem, error) {
	if userID == "" {
		return nil, nil, ErrAuthRequired
	}
	order, err := s.orderRepo.GetByIDForUser(orderID, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.orderRepo.GetItems(orderID)
	if err != nil {
		// The order itself was found; surface it with the read error.
		return order, nil, err
	}
	return order, items, nil
}
