package repositories

import "bookwala/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	FindByUserAndBook(userID, bookID string) (*models.Review, error)
	Create(review *models.Review) error
	Update(review *models.Review) error
	ListByBook(bookID string) ([]models.Review, error)
}

// TestimonialRepository defines the interface for testimonial data access.
type TestimonialRepository interface {
	ListFeatured(limit int) ([]models.Testimonial, error)
}
