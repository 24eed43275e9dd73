package services

import (
	"fmt"
	"time"

	"bookwala/internal/models"
	"bookwala/internal/repositories"
)

// UserService handles profiles and resell-request submission.
type UserService struct {
	profileRepo repositories.ProfileRepository
	resellRepo  repositories.ResellRepository
}

// NewUserService creates a new UserService.
func NewUserService(profileRepo repositories.ProfileRepository, resellRepo repositories.ResellRepository) *UserService {
	return &UserService{
		profileRepo: profileRepo,
		resellRepo:  resellRepo,
	}
}

// GetProfile retrieves a user's profile.
func (s *UserService) GetProfile(userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.profileRepo.GetByID(userID)
}

// UpdateProfile applies the editable profile fields.
func (s *UserService) UpdateProfile(userID string, update models.ProfileUpdate) (*models.Profile, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	return s.profileRepo.Update(userID, update)
}

// ListProfiles retrieves every profile (admin).
func (s *UserService) ListProfiles() ([]models.Profile, error) {
	return s.profileRepo.List()
}

// SubmitResellRequest files a new resell request with status pending.
func (s *UserService) SubmitResellRequest(userID string, request *models.ResellRequest) (*models.ResellRequest, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if request.BookTitle == "" || request.BookAuthor == "" {
		return nil, fmt.Errorf("%w: book title and author are required", ErrValidation)
	}
	if request.ContactPhone == "" {
		return nil, fmt.Errorf("%w: contact phone is required", ErrValidation)
	}
	if request.AskingPrice < 0 {
		return nil, fmt.Errorf("%w: asking price cannot be negative", ErrValidation)
	}

	request.UserID = userID
	request.Status = models.ResellStatusPending
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()
	if err := s.resellRepo.Create(request); err != nil {
		return nil, err
	}
	return request, nil
}
