package repositories

import (
	"fmt"

	"bookwala/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// FindByUserAndBook returns the user's review of a book, or nil when they
// have not reviewed it yet.
func (r *GORMReviewRepository) FindByUserAndBook(userID, bookID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "user_id = ? AND book_id = ?", userID, bookID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review: %w", err)
	}
	return &review, nil
}

// Create creates a new review.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update updates an existing review's rating and comment.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Model(&models.Review{}).Where("id = ?", review.ID).
		Updates(map[string]interface{}{"rating": review.Rating, "comment": review.Comment})
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %s not found for update", review.ID)
	}
	return nil
}

// ListByBook retrieves all reviews for a book.
func (r *GORMReviewRepository) ListByBook(bookID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("book_id = ?", bookID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for book %s: %w", bookID, err)
	}
	return reviews, nil
}

// GORMTestimonialRepository is a GORM implementation of TestimonialRepository.
type GORMTestimonialRepository struct {
	db *gorm.DB
}

// NewGORMTestimonialRepository creates a new instance of GORMTestimonialRepository.
func NewGORMTestimonialRepository(db *gorm.DB) *GORMTestimonialRepository {
	return &GORMTestimonialRepository{
		db: db,
	}
}

// ListFeatured retrieves the newest featured testimonials.
func (r *GORMTestimonialRepository) ListFeatured(limit int) ([]models.Testimonial, error) {
	if limit < 1 {
		limit = 3
	}
	var testimonials []models.Testimonial
	err := r.db.Where("is_featured = ?", true).Order("created_at desc").Limit(limit).Find(&testimonials).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}
