package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/database"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/metrics"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BookingService books and cancels places on slots. It keeps
// 0 <= bookings_count <= capacity and at most one booking per
// (slot, volunteer); both mutations run under the slot's row lock.
type BookingService struct {
	slotRepo    repository.SlotRepository
	bookingRepo repository.BookingRepository
	logger      *zap.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(slotRepo repository.SlotRepository, bookingRepo repository.BookingRepository, logger *zap.Logger) *BookingService {
	return &BookingService{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		logger:      logging.OrNop(logger),
	}
}

// Book reserves a place on the slot for the volunteer and returns the
// confirmed booking.
//
// The unlocked checks only reject obvious failures early; the decision is made
// again under the slot lock.
func (s *BookingService) Book(ctx context.Context, slotID, volunteerID uint64) (*models.Booking, error) {
	slot, err := s.slotRepo.FindByID(ctx, slotID)
	if err != nil {
		return nil, s.bookingFailure(slotID, volunteerID, err)
	}

	if slot.IsFull() {
		return nil, s.bookingFailure(slotID, volunteerID, ErrSlotFull)
	}

	exists, err := s.bookingRepo.Exists(ctx, slotID, volunteerID)
	if err != nil {
		return nil, s.bookingFailure(slotID, volunteerID, err)
	}
	if exists {
		return nil, s.bookingFailure(slotID, volunteerID, ErrDuplicateBooking)
	}

	booking := &models.Booking{
		SlotID:      slotID,
		VolunteerID: &volunteerID,
		Status:      models.BookingStatusConfirmed,
	}

	started := time.Now()
	err = s.bookingRepo.CreateLocked(ctx, booking)
	metrics.ObserveLockWait(time.Since(started).Seconds())
	if err != nil {
		return nil, s.bookingFailure(slotID, volunteerID, err)
	}

	metrics.RecordBooking(metrics.ResultConfirmed)
	s.logger.Info("Slot booked",
		zap.Uint64("slot_id", slotID),
		zap.Uint64("volunteer_id", volunteerID),
		zap.Uint64("booking_id", booking.ID),
	)

	return booking, nil
}

// bookingFailure maps err to a service error and records the outcome
func (s *BookingService) bookingFailure(slotID, volunteerID uint64, err error) error {
	var result string

	switch {
	case errors.Is(err, ErrSlotFull), errors.Is(err, repository.ErrSlotCapacityReached):
		result, err = metrics.ResultFull, ErrSlotFull
	case errors.Is(err, ErrDuplicateBooking), errors.Is(err, repository.ErrBookingExists):
		result, err = metrics.ResultDuplicate, ErrDuplicateBooking
	case errors.Is(err, gorm.ErrRecordNotFound):
		result, err = metrics.ResultError, ErrSlotNotFound
	case database.IsLockContention(err):
		result, err = metrics.ResultContention, fmt.Errorf("%w: %v", ErrLockContention, err)
	default:
		result, err = metrics.ResultError, fmt.Errorf("failed to book slot: %w", err)
	}

	metrics.RecordBooking(result)

	if result == metrics.ResultError && !errors.Is(err, ErrSlotNotFound) {
		s.logger.Error("Booking failed",
			zap.Uint64("slot_id", slotID),
			zap.Uint64("volunteer_id", volunteerID),
			zap.Error(err),
		)
	} else {
		s.logger.Debug("Booking rejected",
			zap.Uint64("slot_id", slotID),
			zap.Uint64("volunteer_id", volunteerID),
			zap.String("result", result),
		)
	}

	return err
}

// Cancel deletes the volunteer's booking and releases its place. A booking
// owned by someone else is reported as ErrBookingNotFound.
func (s *BookingService) Cancel(ctx context.Context, bookingID, volunteerID uint64) (*models.Booking, error) {
	started := time.Now()
	booking, err := s.bookingRepo.DeleteLocked(ctx, bookingID, volunteerID)
	metrics.ObserveLockWait(time.Since(started).Seconds())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBookingNotOwned):
			return nil, ErrBookingNotFound
		case errors.Is(err, gorm.ErrRecordNotFound):
			// slot vanished under the booking
			return nil, ErrBookingNotFound
		case database.IsLockContention(err):
			return nil, fmt.Errorf("%w: %v", ErrLockContention, err)
		default:
			s.logger.Error("Cancellation failed", zap.Uint64("booking_id", bookingID), zap.Error(err))
			return nil, fmt.Errorf("failed to cancel booking: %w", err)
		}
	}

	metrics.RecordCancellation()
	s.logger.Info("Booking cancelled",
		zap.Uint64("booking_id", bookingID),
		zap.Uint64("slot_id", booking.SlotID),
		zap.Uint64("volunteer_id", volunteerID),
	)

	return booking, nil
}

// ListForVolunteer returns the volunteer's bookings, newest first
func (s *BookingService) ListForVolunteer(ctx context.Context, volunteerID uint64, params utils.PaginationParams) ([]models.Booking, int64, error) {
	bookings, total, err := s.bookingRepo.ListByVolunteer(ctx, volunteerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}
