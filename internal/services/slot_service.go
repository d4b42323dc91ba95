package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/metrics"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SlotService creates slots and builds the calendar
type SlotService struct {
	slotRepo    repository.SlotRepository
	profileRepo repository.ProfileRepository
	logger      *zap.Logger
	window      time.Duration
	now         func() time.Time
}

// NewSlotService creates a new SlotService. window is how far ahead the
// calendar looks; zero selects constants.DefaultCalendarWindow.
func NewSlotService(slotRepo repository.SlotRepository, profileRepo repository.ProfileRepository, window time.Duration, logger *zap.Logger) *SlotService {
	if window <= 0 {
		window = constants.DefaultCalendarWindow
	}
	return &SlotService{
		slotRepo:    slotRepo,
		profileRepo: profileRepo,
		logger:      logging.OrNop(logger),
		window:      window,
		now:         time.Now,
	}
}

// CreateSlotInput represents input for creating a slot
type CreateSlotInput struct {
	CreatorID            uint64    `json:"-"`
	TaskTitle            string    `json:"title" validate:"required,max=255"`
	Description          string    `json:"description"`
	StartTS              time.Time `json:"start_ts" validate:"required"`
	EndTS                time.Time `json:"end_ts" validate:"required"`
	Capacity             int       `json:"capacity" validate:"min=1,max=10"`
	Location             string    `json:"location" validate:"max=255"`
	Notes                string    `json:"notes"`
	CategoryName         string    `json:"category" validate:"max=100"`
	RequiresConfirmation bool      `json:"requires_confirmation"`
}

// CreateSlot creates an open slot with no bookings. The task is found by
// (title, creator) or created; an existing task keeps its description and
// category. Only patients may create slots.
func (s *SlotService) CreateSlot(ctx context.Context, input CreateSlotInput) (*models.Slot, error) {
	profile, err := s.loadProfile(ctx, input.CreatorID)
	if err != nil {
		return nil, err
	}
	if !profile.IsPatient() {
		return nil, fmt.Errorf("%w: only patients can create slots", ErrPermissionDenied)
	}

	input.TaskTitle = strings.TrimSpace(input.TaskTitle)
	input.CategoryName = strings.TrimSpace(input.CategoryName)
	if input.Capacity == 0 {
		input.Capacity = constants.MinSlotCapacity
	}

	if !input.EndTS.After(input.StartTS) {
		return nil, newValidationError(ErrInvalidTimeRange, "end_ts", "must be after start_ts")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	slug := ""
	if input.CategoryName != "" {
		slug = utils.Slugify(input.CategoryName)
		if slug == "" {
			return nil, newValidationError(ErrInvalidInput, "category", "must contain letters or digits")
		}
	}

	start, end := input.StartTS.UTC(), input.EndTS.UTC()
	durationMinutes := int(end.Sub(start) / time.Minute)
	creatorID := input.CreatorID

	slot := &models.Slot{
		StartTS:              start,
		EndTS:                end,
		Capacity:             input.Capacity,
		BookingsCount:        0,
		RequiresConfirmation: input.RequiresConfirmation,
		Status:               models.SlotStatusOpen,
		Location:             input.Location,
		Notes:                input.Notes,
	}

	task, err := s.slotRepo.CreateWithTask(ctx, repository.NewSlotParams{
		Task: models.Task{
			Title:                  input.TaskTitle,
			Description:            input.Description,
			CreatedByID:            &creatorID,
			DefaultDurationMinutes: &durationMinutes,
			DefaultCapacity:        input.Capacity,
			Timezone:               profile.timezone(),
			IsPublic:               true,
			Active:                 true,
		},
		CategorySlug: slug,
		CategoryName: input.CategoryName,
		Slot:         slot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create slot: %w", err)
	}

	slot.Task = task
	metrics.RecordSlotsCreated("manual", 1)
	s.logger.Info("Slot created",
		zap.Uint64("slot_id", slot.ID),
		zap.Uint64("task_id", task.ID),
		zap.Uint64("creator_id", creatorID),
		zap.Time("start_ts", start),
	)

	return slot, nil
}

// GetSlot loads a slot with its task, category and bookings
func (s *SlotService) GetSlot(ctx context.Context, id uint64) (*models.Slot, error) {
	slot, err := s.slotRepo.FindByID(ctx, id, "Task.Category", "Bookings.Volunteer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	return slot, nil
}

// UpdateSlotStatus sets the administrative status. It never touches
// bookings_count. Slots of other creators are reported as not found.
func (s *SlotService) UpdateSlotStatus(ctx context.Context, slotID, actorID uint64, status models.SlotStatus) (*models.Slot, error) {
	if !status.Valid() {
		return nil, newValidationError(ErrInvalidInput, "status", "must be one of open filled cancelled")
	}

	slot, err := s.slotRepo.FindByID(ctx, slotID, "Task")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if slot.Task == nil || slot.Task.CreatedByID == nil || *slot.Task.CreatedByID != actorID {
		return nil, ErrSlotNotFound
	}

	if err := s.slotRepo.UpdateStatus(ctx, slotID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to update slot status: %w", err)
	}

	s.logger.Info("Slot status changed",
		zap.Uint64("slot_id", slotID),
		zap.String("from", string(slot.Status)),
		zap.String("to", string(status)),
	)

	slot.Status = status
	return slot, nil
}

// CalendarSlot is one open slot as seen by a particular viewer
type CalendarSlot struct {
	Slot           models.Slot
	TaskTitle      string
	CategoryName   string
	Available      int
	IsFull         bool
	BookedByViewer bool
	BookedBy       []string
}

// Calendar lists open slots in the look-ahead window for a viewer
type Calendar struct {
	From   time.Time
	To     time.Time
	Slots  []CalendarSlot
	Viewer models.OptionalProfile
}

// Calendar returns the open slots starting between now and now + window
func (s *SlotService) Calendar(ctx context.Context, viewerID uint64) (*Calendar, error) {
	viewer, err := s.loadProfile(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	from := s.now().UTC()
	to := from.Add(s.window)
	open := models.SlotStatusOpen

	slots, err := s.slotRepo.List(ctx, repository.SlotFilter{From: from, To: to, Status: &open})
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}

	entries := make([]CalendarSlot, 0, len(slots))
	for _, slot := range slots {
		entries = append(entries, buildCalendarSlot(slot, viewerID))
	}

	return &Calendar{
		From:   from,
		To:     to,
		Slots:  entries,
		Viewer: viewer.OptionalProfile,
	}, nil
}

func buildCalendarSlot(slot models.Slot, viewerID uint64) CalendarSlot {
	entry := CalendarSlot{
		Slot:         slot,
		CategoryName: constants.CategoryNameFallback,
		Available:    slot.AvailableSpots(),
		IsFull:       slot.IsFull(),
		BookedBy:     []string{},
	}

	if slot.Task != nil {
		entry.TaskTitle = slot.Task.Title
		if slot.Task.Category != nil {
			entry.CategoryName = slot.Task.Category.Name
		}
	}

	for _, booking := range slot.Bookings {
		if booking.Volunteer != nil {
			entry.BookedBy = append(entry.BookedBy, booking.Volunteer.Username)
		}
		if booking.VolunteerID != nil && *booking.VolunteerID == viewerID && isActive(booking.Status) {
			entry.BookedByViewer = true
		}
	}

	return entry
}

func isActive(status models.BookingStatus) bool {
	for _, s := range models.ActiveBookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type viewerProfile struct {
	models.OptionalProfile
}

func (v viewerProfile) timezone() string {
	if v.Profile != nil && v.Profile.Timezone != "" {
		return v.Profile.Timezone
	}
	return constants.DefaultTimezone
}

func (s *SlotService) loadProfile(ctx context.Context, userID uint64) (viewerProfile, error) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return viewerProfile{}, nil
		}
		return viewerProfile{}, fmt.Errorf("failed to load profile: %w", err)
	}
	return viewerProfile{models.OptionalProfile{Profile: profile}}, nil
}
