package dto

import (
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
)

// SlotDTO represents a slot in API responses
type SlotDTO struct {
	ID                   uint64            `json:"id"`
	TaskID               uint64            `json:"task_id"`
	TaskTitle            string            `json:"task_title,omitempty"`
	CategoryName         string            `json:"category_name,omitempty"`
	StartTS              time.Time         `json:"start_ts"`
	EndTS                time.Time         `json:"end_ts"`
	Capacity             int               `json:"capacity"`
	BookingsCount        int               `json:"bookings_count"`
	AvailableSpots       int               `json:"available_spots"`
	IsFull               bool              `json:"is_full"`
	RequiresConfirmation bool              `json:"requires_confirmation"`
	Status               models.SlotStatus `json:"status"`
	Location             string            `json:"location"`
	Notes                string            `json:"notes"`
	Bookings             []BookingDTO      `json:"bookings,omitempty"`
}

// CalendarSlotDTO is a slot as seen by the calendar viewer
type CalendarSlotDTO struct {
	SlotDTO
	BookedByViewer bool     `json:"booked_by_viewer"`
	BookedBy       []string `json:"booked_by"`
}

// CalendarResponse represents the calendar view
type CalendarResponse struct {
	From   time.Time         `json:"from"`
	To     time.Time         `json:"to"`
	Viewer ViewerDTO         `json:"viewer"`
	Slots  []CalendarSlotDTO `json:"slots"`
}

// ToSlotDTO converts a Slot model to SlotDTO
func ToSlotDTO(slot models.Slot) SlotDTO {
	dto := SlotDTO{
		ID:                   slot.ID,
		TaskID:               slot.TaskID,
		StartTS:              slot.StartTS,
		EndTS:                slot.EndTS,
		Capacity:             slot.Capacity,
		BookingsCount:        slot.BookingsCount,
		AvailableSpots:       slot.AvailableSpots(),
		IsFull:               slot.IsFull(),
		RequiresConfirmation: slot.RequiresConfirmation,
		Status:               slot.Status,
		Location:             slot.Location,
		Notes:                slot.Notes,
	}

	// Include task details if preloaded
	if slot.Task != nil {
		dto.TaskTitle = slot.Task.Title
		dto.CategoryName = constants.CategoryNameFallback
		if slot.Task.Category != nil {
			dto.CategoryName = slot.Task.Category.Name
		}
	}

	if len(slot.Bookings) > 0 {
		dto.Bookings = make([]BookingDTO, len(slot.Bookings))
		for i, booking := range slot.Bookings {
			dto.Bookings[i] = ToBookingDTO(booking)
		}
	}

	return dto
}

func ToSlotDTOs(slots []models.Slot) []SlotDTO {
	items := make([]SlotDTO, len(slots))
	for i, slot := range slots {
		items[i] = ToSlotDTO(slot)
	}
	return items
}

// ToCalendarResponse converts the calendar view. Bookings are summarised by
// BookedBy and are not repeated per slot.
func ToCalendarResponse(calendar *services.Calendar) CalendarResponse {
	items := make([]CalendarSlotDTO, len(calendar.Slots))
	for i, entry := range calendar.Slots {
		slot := entry.Slot
		slot.Bookings = nil

		item := CalendarSlotDTO{
			SlotDTO:        ToSlotDTO(slot),
			BookedByViewer: entry.BookedByViewer,
			BookedBy:       entry.BookedBy,
		}
		item.TaskTitle = entry.TaskTitle
		item.CategoryName = entry.CategoryName
		item.AvailableSpots = entry.Available
		item.IsFull = entry.IsFull
		items[i] = item
	}

	return CalendarResponse{
		From:   calendar.From,
		To:     calendar.To,
		Viewer: ToViewerDTO(calendar.Viewer),
		Slots:  items,
	}
}
