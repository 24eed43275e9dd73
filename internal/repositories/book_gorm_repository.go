package repositories

import (
	"fmt"

	"bookwala/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// sortableBookColumns guards the ORDER BY clause against arbitrary input.
var sortableBookColumns = map[string]string{
	"title":      "title",
	"author":     "author",
	"price":      "price",
	"rating":     "rating",
	"created_at": "created_at",
}

// GORMBookRepository is a GORM implementation of BookRepository.
type GORMBookRepository struct {
	db *gorm.DB
}

// NewGORMBookRepository creates a new instance of GORMBookRepository.
func NewGORMBookRepository(db *gorm.DB) *GORMBookRepository {
	return &GORMBookRepository{
		db: db,
	}
}

// List retrieves a page of books with the total match count.
func (r *GORMBookRepository) List(params ListBooksParams) ([]models.Book, int64, error) {
	query := r.db.Model(&models.Book{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR author LIKE ?", pattern, pattern)
	}
	if params.Category != "" && params.Category != "all" && params.Category != "all-categories" {
		query = query.Where("category = ?", params.Category)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	sortBy, ok := sortableBookColumns[params.SortBy]
	if !ok {
		sortBy = "title"
	}
	direction := "asc"
	if params.SortOrder == "desc" {
		direction = "desc"
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = 10
	}

	var books []models.Book
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, direction)).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	return books, count, nil
}

// GetByID retrieves a single book by its ID from the database.
func (r *GORMBookRepository) GetByID(id string) (*models.Book, error) {
	var book models.Book
	if err := r.db.First(&book, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("book with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get book by ID %s: %w", id, err)
	}
	return &book, nil
}

// Create creates a new book in the database.
func (r *GORMBookRepository) Create(book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if err := r.db.Create(book).Error; err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

// Update updates an existing book in the database.
func (r *GORMBookRepository) Update(book *models.Book) error {
	res := r.db.Save(book)
	if res.Error != nil {
		return fmt.Errorf("failed to update book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s not found for update", book.ID)
	}
	return nil
}

// Delete deletes a book by its ID from the database.
func (r *GORMBookRepository) Delete(id string) error {
	res := r.db.Delete(&models.Book{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s not found for deletion", id)
	}
	return nil
}

// Categories returns every distinct category with its book count.
func (r *GORMBookRepository) Categories() ([]models.CategoryCount, error) {
	var categories []models.CategoryCount
	err := r.db.Model(&models.Book{}).
		Select("category AS name, COUNT(*) AS count").
		Where("category <> ''").
		Group("category").
		Order("category asc").
		Scan(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	return categories, nil
}

// UpdateRating writes a book's recomputed aggregate rating and review count.
func (r *GORMBookRepository) UpdateRating(bookID string, rating float64, reviewCount int) error {
	res := r.db.Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]interface{}{"rating": rating, "reviews": reviewCount})
	if res.Error != nil {
		return fmt.Errorf("failed to update rating for book %s: %w", bookID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("book with ID %s not found for rating update", bookID)
	}
	return nil
}

// Count returns the total number of books.
func (r *GORMBookRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Book{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count books: %w", err)
	}
	return count, nil
}
