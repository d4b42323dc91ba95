package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"gorm.io/gorm"
)

var ErrAvailabilityNotFound = errors.New("availability not found")

// AvailabilityService manages the weekly windows in which a user is free
type AvailabilityService struct {
	availabilityRepo repository.AvailabilityRepository
}

func NewAvailabilityService(availabilityRepo repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{availabilityRepo: availabilityRepo}
}

// AddAvailabilityInput describes one weekly window
type AddAvailabilityInput struct {
	UserID    uint64 `json:"-"`
	Weekday   int    `json:"weekday" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Timezone  string `json:"timezone" validate:"omitempty,timezone"`
}

func (s *AvailabilityService) Add(ctx context.Context, input AddAvailabilityInput) (*models.Availability, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, err := utils.ParseClock(input.StartTime)
	if err != nil {
		return nil, newValidationError(ErrInvalidInput, "start_time", "must be HH:MM")
	}
	end, err := utils.ParseClock(input.EndTime)
	if err != nil {
		return nil, newValidationError(ErrInvalidInput, "end_time", "must be HH:MM")
	}
	if end <= start {
		return nil, newValidationError(ErrInvalidTimeRange, "end_time", "must be after start_time")
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = constants.DefaultTimezone
	}

	availability := &models.Availability{
		UserID:    input.UserID,
		Weekday:   input.Weekday,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Timezone:  timezone,
	}
	if err := s.availabilityRepo.Create(ctx, availability); err != nil {
		return nil, fmt.Errorf("failed to add availability: %w", err)
	}

	return availability, nil
}

func (s *AvailabilityService) List(ctx context.Context, userID uint64) ([]models.Availability, error) {
	windows, err := s.availabilityRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return windows, nil
}

// Delete removes one of the user's windows; other users' windows are not found
func (s *AvailabilityService) Delete(ctx context.Context, id, userID uint64) error {
	if err := s.availabilityRepo.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAvailabilityNotFound
		}
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	return nil
}
