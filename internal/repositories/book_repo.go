package repositories

import (
	"bookwala/internal/models"
)

// ListBooksParams controls catalog listing: search matches title or author,
// pages are 1-based.
type ListBooksParams struct {
	Search    string
	Category  string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// BookRepository defines the interface for book data access.
type BookRepository interface {
	List(params ListBooksParams) ([]models.Book, int64, error)
	GetByID(id string) (*models.Book, error)
	Create(book *models.Book) error
	Update(book *models.Book) error
	Delete(id string) error
	Categories() ([]models.CategoryCount, error)
	UpdateRating(bookID string, rating float64, reviewCount int) error
	Count() (int64, error)
}
