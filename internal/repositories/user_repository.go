package repositories

import "bookwala/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

// ProfileRepository defines the interface for profile data access. A profile
// row shares its ID with the owning user.
type ProfileRepository interface {
	Create(profile *models.Profile) error
	GetByID(id string) (*models.Profile, error)
	Update(id string, update models.ProfileUpdate) (*models.Profile, error)
	List() ([]models.Profile, error)
}
