package models

import (
	"time"

	"gorm.io/datatypes"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// Notification records a message that should reach a user. Nothing in this
// service delivers them; Delivered and SentAt are left for an external sender.
type Notification struct {
	ID        uint64              `gorm:"primarykey" json:"id"`
	UserID    *uint64             `gorm:"index" json:"user_id"`
	BookingID *uint64             `json:"booking_id"`
	Channel   NotificationChannel `gorm:"type:varchar(20);not null" json:"channel"`
	Kind      string              `gorm:"type:varchar(100);not null" json:"kind"`
	Payload   datatypes.JSON      `json:"payload"`
	SentAt    *time.Time          `json:"sent_at"`
	Delivered bool                `gorm:"not null;default:false" json:"delivered"`
	CreatedAt time.Time           `json:"created_at"`

	// Relations
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:SET NULL" json:"-"`
}
