package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that count as holding a place
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// Booking rows are hard-deleted on cancellation, so there is no soft-delete column.
type Booking struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	SlotID      uint64        `gorm:"not null;uniqueIndex:idx_bookings_slot_volunteer" json:"slot_id"`
	VolunteerID *uint64       `gorm:"uniqueIndex:idx_bookings_slot_volunteer" json:"volunteer_id"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Notes       string        `gorm:"type:text" json:"notes"`
	ContactInfo string        `gorm:"type:varchar(255)" json:"contact_info"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Slot      *Slot `gorm:"foreignKey:SlotID" json:"slot,omitempty"`
	Volunteer *User `gorm:"foreignKey:VolunteerID;constraint:OnDelete:SET NULL" json:"volunteer,omitempty"`
}
