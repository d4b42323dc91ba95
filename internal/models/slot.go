package models

import (
	"time"
)

type SlotStatus string

const (
	SlotStatusOpen      SlotStatus = "open"
	SlotStatusFilled    SlotStatus = "filled"
	SlotStatusCancelled SlotStatus = "cancelled"
)

// Valid reports whether s is one of the declared statuses
func (s SlotStatus) Valid() bool {
	switch s {
	case SlotStatusOpen, SlotStatusFilled, SlotStatusCancelled:
		return true
	}
	return false
}

// Slot is a bookable time window of a Task.
//
// BookingsCount is maintained only by the booking and cancellation paths and is
// the sole source of truth for fullness; Status is set administratively.
type Slot struct {
	ID                   uint64     `gorm:"primarykey" json:"id"`
	TaskID               uint64     `gorm:"not null;index" json:"task_id"`
	StartTS              time.Time  `gorm:"column:start_ts;not null;index" json:"start_ts"`
	EndTS                time.Time  `gorm:"column:end_ts;not null" json:"end_ts"`
	Capacity             int        `gorm:"not null;default:1" json:"capacity"`
	BookingsCount        int        `gorm:"not null;default:0" json:"bookings_count"`
	RequiresConfirmation bool       `gorm:"not null;default:false" json:"requires_confirmation"`
	Status               SlotStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	Location             string     `gorm:"type:varchar(255)" json:"location"`
	Notes                string     `gorm:"type:text" json:"notes"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	// Relations
	Task     *Task     `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Bookings []Booking `gorm:"foreignKey:SlotID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}

// AvailableSpots is capacity minus bookings, never negative
func (s *Slot) AvailableSpots() int {
	if s.BookingsCount >= s.Capacity {
		return 0
	}
	return s.Capacity - s.BookingsCount
}

func (s *Slot) IsFull() bool {
	return s.BookingsCount >= s.Capacity
}
