package models

import "time"

// Review is one user's rating of one book. A user has at most one review per
// book; re-submitting replaces it.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index:idx_reviews_user_book;type:varchar(36)" validate:"required"`
	BookID    string    `json:"book_id" gorm:"index:idx_reviews_user_book;type:varchar(36)" validate:"required"`
	Rating    int       `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string    `json:"comment" validate:"omitempty,max=2000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Testimonial is a curated quote shown on the home page when featured.
type Testimonial struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	Content    string    `json:"content"`
	AvatarURL  string    `json:"avatar_url"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// Resell request statuses.
const (
	ResellStatusPending  = "pending"
	ResellStatusApproved = "approved"
	ResellStatusRejected = "rejected"
)

// ResellRequest is a customer's offer to sell a used book back to the store.
type ResellRequest struct {
	ID            string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID        string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Status        string    `json:"status" gorm:"type:varchar(20)"`
	BookTitle     string    `json:"book_title" validate:"required"`
	BookAuthor    string    `json:"book_author" validate:"required"`
	BookISBN      string    `json:"book_isbn" gorm:"column:book_isbn"`
	BookCondition string    `json:"book_condition" validate:"required"`
	AskingPrice   float64   `json:"asking_price" validate:"omitempty,gte=0"`
	Description   string    `json:"description" validate:"omitempty,max=2000"`
	ContactPhone  string    `json:"contact_phone" validate:"required"`
	ImageURLs     []string  `json:"image_urls" gorm:"serializer:json"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
