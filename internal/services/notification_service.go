package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification kinds
const (
	KindBookingConfirmed = "booking_confirmed"
	KindBookingCancelled = "booking_cancelled"
)

// NotificationService records notifications for the slot's creator. They are
// stored undelivered; sending them is left to an external worker.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	profileRepo      repository.ProfileRepository
	logger           *zap.Logger
}

func NewNotificationService(notificationRepo repository.NotificationRepository, profileRepo repository.ProfileRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		profileRepo:      profileRepo,
		logger:           logging.OrNop(logger),
	}
}

// EnqueueForCreator stores one notification per channel the slot creator
// enabled. A slot whose task has no creator produces none.
func (s *NotificationService) EnqueueForCreator(ctx context.Context, slot *models.Slot, booking *models.Booking, kind string) ([]models.Notification, error) {
	if slot.Task == nil || slot.Task.CreatedByID == nil {
		return nil, nil
	}
	recipient := *slot.Task.CreatedByID

	profile, err := s.profileRepo.FindByUserID(ctx, recipient)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load recipient profile: %w", err)
	}
	channels := channelsFor(profile)

	payload, err := json.Marshal(map[string]interface{}{
		"slot_id":      slot.ID,
		"task_title":   slot.Task.Title,
		"start_ts":     slot.StartTS,
		"volunteer_id": booking.VolunteerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification payload: %w", err)
	}

	var bookingID *uint64
	if kind == KindBookingConfirmed {
		// cancelled bookings are deleted, so only confirmations can reference one
		id := booking.ID
		bookingID = &id
	}

	created := make([]models.Notification, 0, len(channels))
	for _, channel := range channels {
		notification := models.Notification{
			UserID:    &recipient,
			BookingID: bookingID,
			Channel:   channel,
			Kind:      kind,
			Payload:   datatypes.JSON(payload),
		}
		if err := s.notificationRepo.Create(ctx, &notification); err != nil {
			s.logger.Warn("Failed to enqueue notification",
				zap.Uint64("user_id", recipient),
				zap.String("kind", kind),
				zap.Error(err),
			)
			return created, fmt.Errorf("failed to enqueue notification: %w", err)
		}
		created = append(created, notification)
	}

	return created, nil
}

// channelsFor picks the enabled channels; users without a profile get email
func channelsFor(profile *models.VolunteerProfile) []models.NotificationChannel {
	if profile == nil {
		return []models.NotificationChannel{models.ChannelEmail}
	}

	var channels []models.NotificationChannel
	if profile.NotifyEmail {
		channels = append(channels, models.ChannelEmail)
	}
	if profile.NotifySMS && profile.Phone != "" {
		channels = append(channels, models.ChannelSMS)
	}
	return channels
}

// ListForUser returns the user's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, userID uint64, params utils.PaginationParams) ([]models.Notification, int64, error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}
