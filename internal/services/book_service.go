package services

import (
	"fmt"
	"time"

	"bookwala/internal/models"
	"bookwala/internal/repositories"
)

// BookList is a page of catalog results.
type BookList struct {
	Books       []models.Book `json:"books"`
	Count       int64         `json:"count"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
}

// BookService handles the catalog, reviews, and testimonials.
type BookService struct {
	bookRepo        repositories.BookRepository
	reviewRepo      repositories.ReviewRepository
	testimonialRepo repositories.TestimonialRepository
}

// NewBookService creates a new BookService.
func NewBookService(bookRepo repositories.BookRepository, reviewRepo repositories.ReviewRepository, testimonialRepo repositories.TestimonialRepository) *BookService {
	return &BookService{
		bookRepo:        bookRepo,
		reviewRepo:      reviewRepo,
		testimonialRepo: testimonialRepo,
	}
}

// ListBooks retrieves a page of books with search, category filter, and
// sorting applied.
func (s *BookService) ListBooks(params repositories.ListBooksParams) (*BookList, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}
	books, count, err := s.bookRepo.List(params)
	if err != nil {
		return nil, err
	}
	totalPages := int((count + int64(params.Limit) - 1) / int64(params.Limit))
	return &BookList{
		Books:       books,
		Count:       count,
		TotalPages:  totalPages,
		CurrentPage: params.Page,
	}, nil
}

// GetBookByID retrieves a single book.
func (s *BookService) GetBookByID(id string) (*models.Book, error) {
	return s.bookRepo.GetByID(id)
}

// GetFeaturedBooks returns the six highest-rated books for the home page.
func (s *BookService) GetFeaturedBooks() (*BookList, error) {
	return s.ListBooks(repositories.ListBooksParams{
		Limit:     6,
		SortBy:    "rating",
		SortOrder: "desc",
	})
}

// GetCategories returns every category with its book count.
func (s *BookService) GetCategories() ([]models.CategoryCount, error) {
	return s.bookRepo.Categories()
}

// GetTestimonials returns the three most recent featured testimonials.
func (s *BookService) GetTestimonials() ([]models.Testimonial, error) {
	return s.testimonialRepo.ListFeatured(3)
}

// CreateBook creates a catalog entry (admin).
func (s *BookService) CreateBook(book *models.Book) error {
	return s.bookRepo.Create(book)
}

// UpdateBook updates a catalog entry (admin).
func (s *BookService) UpdateBook(book *models.Book) error {
	return s.bookRepo.Update(book)
}

// DeleteBook removes a catalog entry (admin).
func (s *BookService) DeleteBook(id string) error {
	return s.bookRepo.Delete(id)
}

// SubmitReview records a user's review of a book, replacing any earlier one,
// then recomputes the book's aggregate rating. A failed recompute does not
// fail the submission.
func (s *BookService) SubmitReview(userID, bookID string, rating int, comment string) (*models.Review, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if bookID == "" {
		return nil, fmt.Errorf("%w: book reference is required", ErrValidation)
	}
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}

	existing, err := s.reviewRepo.FindByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}

	var review *models.Review
	if existing != nil {
		existing.Rating = rating
		existing.Comment = comment
		existing.UpdatedAt = time.Now()
		if err := s.reviewRepo.Update(existing); err != nil {
			return nil, err
		}
		review = existing
	} else {
		review = &models.Review{
			UserID:    userID,
			BookID:    bookID,
			Rating:    rating,
			Comment:   comment,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.reviewRepo.Create(review); err != nil {
			return nil, err
		}
	}

	s.refreshBookRating(bookID)
	return review, nil
}

// refreshBookRating recomputes a book's average rating and review count from
// its reviews. Best-effort.
func (s *BookService) refreshBookRating(bookID string) {
	reviews, err := s.reviewRepo.ListByBook(bookID)
	if err != nil || len(reviews) == 0 {
		return
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	average := float64(total) / float64(len(reviews))
	// The listing sorts by rating, so a stale value only costs ordering.
	_ = s.bookRepo.UpdateRating(bookID, average, len(reviews))
}
