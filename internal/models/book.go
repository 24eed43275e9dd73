package models

import "gorm.io/gorm"

// Book represents a title in the catalog. Field names mirror the columns of
// the external books table.
type Book struct {
	ID                   string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Title                string  `json:"title" validate:"required,min=1,max=255"`
	Author               string  `json:"author" validate:"required,min=1,max=255"`
	CoverImage           string  `json:"cover_image" validate:"omitempty,url"`
	Price                float64 `json:"price" validate:"required,gt=0"`
	OriginalPrice        float64 `json:"original_price" validate:"omitempty,gte=0"`
	Rating               float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Reviews              int     `json:"reviews" validate:"gte=0"`
	Description          string  `json:"description" validate:"omitempty,max=5000"`
	Category             string  `json:"category"`
	Language             string  `json:"language"`
	Publisher            string  `json:"publisher"`
	PublicationDate      string  `json:"publication_date"`
	ISBN                 string  `json:"isbn" gorm:"column:isbn"`
	PageCount            int     `json:"page_count" validate:"gte=0"`
	Edition              string  `json:"edition"`
	Binding              string  `json:"binding"`
	IsNew                bool    `json:"is_new"`
	HasFreeDelivery      bool    `json:"has_free_delivery"`
	HasRentOption        bool    `json:"has_rent_option"`
	IsAvailableForResell bool    `json:"is_available_for_resell"`
	StockStatus          string  `json:"stock_status"`
	gorm.Model           // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// CategoryCount is a category name with the number of books in it, used by
// the catalog category listing and the admin dashboard.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
