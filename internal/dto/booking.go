package dto

import (
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

// BookingDTO represents a booking in API responses
type BookingDTO struct {
	ID          uint64               `json:"id"`
	SlotID      uint64               `json:"slot_id"`
	VolunteerID *uint64              `json:"volunteer_id"`
	Volunteer   *UserDTO             `json:"volunteer,omitempty"`
	Status      models.BookingStatus `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	Slot        *SlotDTO             `json:"slot,omitempty"`
}

// BookingListResponse represents a paginated list of the caller's bookings
type BookingListResponse struct {
	Bookings   []BookingDTO             `json:"bookings"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToBookingDTO converts a Booking model to BookingDTO
func ToBookingDTO(booking models.Booking) BookingDTO {
	dto := BookingDTO{
		ID:          booking.ID,
		SlotID:      booking.SlotID,
		VolunteerID: booking.VolunteerID,
		Status:      booking.Status,
		Notes:       booking.Notes,
		CreatedAt:   booking.CreatedAt,
	}

	if booking.Volunteer != nil {
		volunteer := UserDTO{ID: booking.Volunteer.ID, Username: booking.Volunteer.Username}
		dto.Volunteer = &volunteer
	}
	if booking.Slot != nil {
		slot := ToSlotDTO(*booking.Slot)
		dto.Slot = &slot
	}

	return dto
}

func ToBookingListResponse(bookings []models.Booking, params utils.PaginationParams, total int64) BookingListResponse {
	items := make([]BookingDTO, len(bookings))
	for i, booking := range bookings {
		items[i] = ToBookingDTO(booking)
	}

	return BookingListResponse{
		Bookings:   items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
