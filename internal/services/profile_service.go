package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrEmailTaken = errors.New("email already in use")

// ProfileService reads and edits volunteer profiles
type ProfileService struct {
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
}

func NewProfileService(profileRepo repository.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logging.OrNop(logger),
	}
}

// GetProfile returns the user's profile, empty when none was ever saved
func (s *ProfileService) GetProfile(ctx context.Context, userID uint64) (models.OptionalProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.OptionalProfile{}, nil
		}
		return models.OptionalProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return models.OptionalProfile{Profile: profile}, nil
}

// UpdateProfileInput holds the editable profile fields; nil leaves a field unchanged.
// The role is chosen at signup and is not editable here.
type UpdateProfileInput struct {
	UserID      uint64  `json:"-"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=200"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	Timezone    *string `json:"timezone" validate:"omitempty,timezone"`
	NotifyEmail *bool   `json:"notify_email"`
	NotifySMS   *bool   `json:"notify_sms"`
	Email       *string `json:"email" validate:"omitempty,email,max=255"`
}

// UpdateProfile applies the changes, creating the profile on first write
func (s *ProfileService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*models.VolunteerProfile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	current, err := s.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	profile := current.Profile
	if !current.Exists() {
		profile = &models.VolunteerProfile{
			UserID:      input.UserID,
			Role:        current.Role(),
			Timezone:    constants.DefaultTimezone,
			NotifyEmail: true,
		}
	}

	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Timezone != nil && *input.Timezone != "" {
		profile.Timezone = *input.Timezone
	}
	if input.NotifyEmail != nil {
		profile.NotifyEmail = *input.NotifyEmail
	}
	if input.NotifySMS != nil {
		profile.NotifySMS = *input.NotifySMS
	}

	email := input.Email
	if email != nil && *email == "" {
		email = nil
	}

	if err := s.profileRepo.Save(ctx, profile, email); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("Profile updated", zap.Uint64("user_id", input.UserID), zap.Bool("created", !current.Exists()))
	return profile, nil
}
