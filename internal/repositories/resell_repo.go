package repositories

import "bookwala/internal/models"

// ResellRepository defines the interface for resell-request data access.
type ResellRepository interface {
	Create(request *models.ResellRequest) error
	List(page, limit int, status string) ([]models.ResellRequest, int64, error)
	UpdateStatus(id string, status string) error
	Count() (int64, error)
}
