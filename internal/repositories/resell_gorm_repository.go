package repositories

import (
	"fmt"

	"bookwala/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMResellRepository is a GORM implementation of ResellRepository.
type GORMResellRepository struct {
	db *gorm.DB
}

// NewGORMResellRepository creates a new instance of GORMResellRepository.
func NewGORMResellRepository(db *gorm.DB) *GORMResellRepository {
	return &GORMResellRepository{
		db: db,
	}
}

// Create creates a new resell request.
func (r *GORMResellRepository) Create(request *models.ResellRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if err := r.db.Create(request).Error; err != nil {
		return fmt.Errorf("failed to create resell request: %w", err)
	}
	return nil
}

// List retrieves a page of resell requests, optionally filtered by status.
func (r *GORMResellRepository) List(page, limit int, status string) ([]models.ResellRequest, int64, error) {
	query := r.db.Model(&models.ResellRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count resell requests: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var requests []models.ResellRequest
	err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&requests).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resell requests: %w", err)
	}
	return requests, count, nil
}

// UpdateStatus sets the status of a resell request.
func (r *GORMResellRepository) UpdateStatus(id string, status string) error {
	res := r.db.Model(&models.ResellRequest{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update resell request status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("resell request with ID %s not found for status update", id)
	}
	return nil
}

// Count returns the total number of resell requests.
func (r *GORMResellRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.ResellRequest{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count resell requests: %w", err)
	}
	return count, nil
}
