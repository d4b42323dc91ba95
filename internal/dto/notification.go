package dto

import (
	"encoding/json"
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

// NotificationDTO represents a stored notification
type NotificationDTO struct {
	ID        uint64                     `json:"id"`
	BookingID *uint64                    `json:"booking_id"`
	Channel   models.NotificationChannel `json:"channel"`
	Kind      string                     `json:"kind"`
	Payload   json.RawMessage            `json:"payload,omitempty"`
	Delivered bool                       `json:"delivered"`
	SentAt    *time.Time                 `json:"sent_at"`
	CreatedAt time.Time                  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationDTO        `json:"notifications"`
	Pagination    utils.PaginationResponse `json:"pagination"`
}

// AvailabilityDTO represents one weekly availability window
type AvailabilityDTO struct {
	ID        uint64 `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        notification.ID,
		BookingID: notification.BookingID,
		Channel:   notification.Channel,
		Kind:      notification.Kind,
		Payload:   json.RawMessage(notification.Payload),
		Delivered: notification.Delivered,
		SentAt:    notification.SentAt,
		CreatedAt: notification.CreatedAt,
	}
}

func ToNotificationListResponse(notifications []models.Notification, params utils.PaginationParams, total int64) NotificationListResponse {
	items := make([]NotificationDTO, len(notifications))
	for i, notification := range notifications {
		items[i] = ToNotificationDTO(notification)
	}

	return NotificationListResponse{
		Notifications: items,
		Pagination:    utils.NewPaginationResponse(params, total),
	}
}

func ToAvailabilityDTOs(windows []models.Availability) []AvailabilityDTO {
	items := make([]AvailabilityDTO, len(windows))
	for i, window := range windows {
		items[i] = AvailabilityDTO{
			ID:        window.ID,
			Weekday:   window.Weekday,
			StartTime: window.StartTime,
			EndTime:   window.EndTime,
			Timezone:  window.Timezone,
		}
	}
	return items
}
