package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity actions
const (
	ActionSlotCreated     = "slot.created"
	ActionSlotStatus      = "slot.status_changed"
	ActionSlotsGenerated  = "slots.generated"
	ActionBookingCreated  = "booking.created"
	ActionBookingCanceled = "booking.cancelled"
	ActionProfileUpdated  = "profile.updated"
	ActionUserSignedUp    = "user.signed_up"
)

type ActivityLog struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	UserID     *uint64        `gorm:"index" json:"user_id"`
	Action     string         `gorm:"type:varchar(100);not null" json:"action"`
	ObjectType string         `gorm:"type:varchar(100)" json:"object_type"`
	ObjectID   string         `gorm:"type:varchar(100)" json:"object_id"`
	Meta       datatypes.JSON `json:"meta"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"-"`
}
