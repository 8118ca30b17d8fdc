package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// ProfileService provisions and maintains user profiles. Profiles are never
// created by handlers directly; Ensure runs on the user-created event.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Ensure creates the user's profile with empty optional fields if it does not
// exist yet. Calling it again for the same user is a no-op, so replayed
// events never produce a second profile.
func (s *ProfileService) Ensure(ctx context.Context, user *models.User) error {
	existing, err := s.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.profileRepo.Create(ctx, &models.Profile{UserID: user.ID})
}

// Get returns the user's profile, or nil when none exists.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfileInput carries editable profile fields. Absent fields (nil
// DateOfBirth, empty Photo) keep the stored values.
type UpdateProfileInput struct {
	DateOfBirth *time.Time
	Photo       string
}

// Update edits the caller's profile.
func (s *ProfileService) Update(ctx context.Context, userID uint, in UpdateProfileInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError("profile", userID)
	}

	if in.DateOfBirth != nil {
		profile.DateOfBirth = in.DateOfBirth
	}
	if in.Photo != "" {
		profile.Photo = in.Photo
	}
	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
