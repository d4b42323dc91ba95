package repository

import (
	"context"
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// CreateWithProfile creates a user and their profile within a single transaction.
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.VolunteerProfile) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// ExistsByUsernameOrEmail reports whether either value is taken
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// ProfileRepository defines the interface for volunteer profile data access
type ProfileRepository interface {
	// FindByUserID returns the profile, or gorm.ErrRecordNotFound when none was saved
	FindByUserID(ctx context.Context, userID uint64) (*models.VolunteerProfile, error)

	// Save inserts or replaces the user's profile. A non-nil email also
	// updates the user row in the same transaction.
	Save(ctx context.Context, profile *models.VolunteerProfile, email *string) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// FindByID finds a task by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Task, error)

	// ListByCreator lists the tasks a user created, newest first
	ListByCreator(ctx context.Context, creatorID uint64, params utils.PaginationParams) ([]models.Task, int64, error)

	// Update saves changed task fields
	Update(ctx context.Context, task *models.Task) error
}

// NewSlotParams carries everything a slot creation persists
type NewSlotParams struct {
	// Task is looked up by Title and CreatedByID; the other fields are used
	// only when no such task exists yet.
	Task models.Task
	// CategorySlug is empty when the slot is uncategorised
	CategorySlug string
	CategoryName string
	Slot         *models.Slot
}

// SlotFilter holds filtering options for listing slots
type SlotFilter struct {
	From   time.Time
	To     time.Time
	Status *models.SlotStatus
}

// SlotRepository defines the interface for slot data access
type SlotRepository interface {
	// CreateWithTask resolves or creates the category and the (title, creator)
	// task, then creates the slot, all in one transaction. It returns the task
	// the slot was attached to.
	CreateWithTask(ctx context.Context, params NewSlotParams) (*models.Task, error)

	// CreateBatch inserts slots for an existing task
	CreateBatch(ctx context.Context, slots []models.Slot) error

	// FindByID finds a slot by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Slot, error)

	// List returns slots starting in [From, To] ordered by start, with task,
	// category and bookings loaded
	List(ctx context.Context, filter SlotFilter) ([]models.Slot, error)

	// ListStartsForTask returns the start times already used by a task's slots in [from, to]
	ListStartsForTask(ctx context.Context, taskID uint64, from, to time.Time) ([]time.Time, error)

	// UpdateStatus sets the administrative status
	UpdateStatus(ctx context.Context, id uint64, status models.SlotStatus) error
}

// BookingRepository defines the interface for booking data access
type BookingRepository interface {
	// Exists reports whether the volunteer holds a booking on the slot
	Exists(ctx context.Context, slotID, volunteerID uint64) (bool, error)

	// CreateLocked inserts the booking while holding a write lock on its slot
	// and increments the slot's bookings_count.
	CreateLocked(ctx context.Context, booking *models.Booking) error

	// DeleteLocked removes the volunteer's booking while holding a write lock
	// on its slot and decrements bookings_count, never below zero.
	DeleteLocked(ctx context.Context, bookingID, volunteerID uint64) (*models.Booking, error)

	// ListByVolunteer lists a volunteer's bookings with slot and task, newest first
	ListByVolunteer(ctx context.Context, volunteerID uint64, params utils.PaginationParams) ([]models.Booking, int64, error)
}

// AvailabilityRepository defines the interface for availability data access
type AvailabilityRepository interface {
	Create(ctx context.Context, availability *models.Availability) error
	ListByUser(ctx context.Context, userID uint64) ([]models.Availability, error)
	// DeleteOwned returns gorm.ErrRecordNotFound unless the row exists and belongs to userID
	DeleteOwned(ctx context.Context, id, userID uint64) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID uint64, params utils.PaginationParams) ([]models.Notification, int64, error)
}

// ActivityRepository defines the interface for the activity log
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	ListByUser(ctx context.Context, userID uint64, limit int) ([]models.ActivityLog, error)
}
