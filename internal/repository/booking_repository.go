package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/database"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrSlotCapacityReached is returned when the locked slot has no free place.
	ErrSlotCapacityReached = errors.New("booking repository: slot capacity reached")
	// ErrBookingExists is returned when the volunteer already holds a booking on the slot.
	ErrBookingExists = errors.New("booking repository: booking already exists")
	// ErrBookingNotOwned is returned when the booking is missing or belongs to someone else.
	ErrBookingNotOwned = errors.New("booking repository: booking not found for volunteer")
)

// GormBookingRepository is a GORM implementation of BookingRepository
type GormBookingRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewBookingRepository creates a new BookingRepository. lockTimeout bounds
// the wait for a slot row lock; zero leaves the store default.
func NewBookingRepository(db *gorm.DB, lockTimeout time.Duration) BookingRepository {
	return &GormBookingRepository{db: db, lockTimeout: lockTimeout}
}

func (r *GormBookingRepository) Exists(ctx context.Context, slotID, volunteerID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("slot_id = ? AND volunteer_id = ?", slotID, volunteerID).
		Count(&count).Error
	return count > 0, err
}

// CreateLocked re-validates capacity and uniqueness under the slot lock
func (r *GormBookingRepository) CreateLocked(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return database.WithLockTimeout(tx, r.lockTimeout, func() error {
			return createUnderSlotLock(tx, booking)
		})
	})
}

func createUnderSlotLock(tx *gorm.DB, booking *models.Booking) error {
	slot, err := lockSlot(tx, booking.SlotID)
	if err != nil {
		return err
	}

	if slot.BookingsCount >= slot.Capacity {
		return ErrSlotCapacityReached
	}

	var existing int64
	err = tx.Model(&models.Booking{}).
		Where("slot_id = ? AND volunteer_id = ?", slot.ID, booking.VolunteerID).
		Count(&existing).Error
	if err != nil {
		return err
	}
	if existing > 0 {
		return ErrBookingExists
	}

	if err := tx.Omit(clause.Associations).Create(booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrBookingExists
		}
		return err
	}

	return tx.Model(slot).UpdateColumn("bookings_count", gorm.Expr("bookings_count + ?", 1)).Error
}

// DeleteLocked deletes the booking and decrements its slot under the slot lock
func (r *GormBookingRepository) DeleteLocked(ctx context.Context, bookingID, volunteerID uint64) (*models.Booking, error) {
	var booking models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return database.WithLockTimeout(tx, r.lockTimeout, func() error {
			return deleteUnderSlotLock(tx, &booking, bookingID, volunteerID)
		})
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func deleteUnderSlotLock(tx *gorm.DB, booking *models.Booking, bookingID, volunteerID uint64) error {
	err := tx.Where("id = ? AND volunteer_id = ?", bookingID, volunteerID).First(booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookingNotOwned
	}
	if err != nil {
		return err
	}

	slot, err := lockSlot(tx, booking.SlotID)
	if err != nil {
		return err
	}

	result := tx.Delete(&models.Booking{}, booking.ID)
	if result.Error != nil {
		return result.Error
	}
	// cancelled concurrently between the read and the lock
	if result.RowsAffected == 0 {
		return ErrBookingNotOwned
	}

	count := slot.BookingsCount - 1
	if count < 0 {
		count = 0
	}
	return tx.Model(slot).UpdateColumn("bookings_count", count).Error
}

// lockSlot reads the slot with SELECT ... FOR UPDATE
func lockSlot(tx *gorm.DB, slotID uint64) (*models.Slot, error) {
	var slot models.Slot
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&slot, slotID).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListByVolunteer lists a volunteer's bookings
func (r *GormBookingRepository) ListByVolunteer(ctx context.Context, volunteerID uint64, params utils.PaginationParams) ([]models.Booking, int64, error) {
	var bookings []models.Booking

	query := r.db.WithContext(ctx).Model(&models.Booking{}).Where("bookings.volunteer_id = ?", volunteerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("bookings.created_at DESC").
		Scopes(database.Paginate(params)).
		Preload("Slot.Task").
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}
