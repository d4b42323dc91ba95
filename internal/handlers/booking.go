package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
	"go.uber.org/zap"
)

type BookingHandler struct {
	bookingService      *services.BookingService
	slotService         *services.SlotService
	notificationService *services.NotificationService
	activityService     *services.ActivityService
	logger              *zap.Logger
}

func NewBookingHandler(
	bookingService *services.BookingService,
	slotService *services.SlotService,
	notificationService *services.NotificationService,
	activityService *services.ActivityService,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingService:      bookingService,
		slotService:         slotService,
		notificationService: notificationService,
		activityService:     activityService,
		logger:              logging.OrNop(logger),
	}
}

// BookSlot books a place on the slot for the caller
func (h *BookingHandler) BookSlot(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	slotID, ok := idParam(c, "id", "slot")
	if !ok {
		return
	}

	booking, err := h.bookingService.Book(c.Request.Context(), slotID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recordActivity(c, h.activityService, userID, models.ActionBookingCreated, "booking", booking.ID, map[string]interface{}{
		"slot_id": slotID,
	})
	h.notifyCreator(c.Request.Context(), booking, services.KindBookingConfirmed)

	c.JSON(http.StatusCreated, dto.ToBookingDTO(*booking))
}

// ListBookings returns the caller's bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListForVolunteer(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingListResponse(bookings, params, total))
}

// CancelBooking cancels one of the caller's bookings
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	bookingID, ok := idParam(c, "id", "booking")
	if !ok {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), bookingID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recordActivity(c, h.activityService, userID, models.ActionBookingCanceled, "booking", booking.ID, map[string]interface{}{
		"slot_id": booking.SlotID,
	})
	h.notifyCreator(c.Request.Context(), booking, services.KindBookingCancelled)

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled",
		"booking": dto.ToBookingDTO(*booking),
	})
}

// notifyCreator queues notifications for the slot's creator. The booking has
// already been committed, so failures are only logged.
func (h *BookingHandler) notifyCreator(ctx context.Context, booking *models.Booking, kind string) {
	if h.notificationService == nil {
		return
	}

	slot, err := h.slotService.GetSlot(ctx, booking.SlotID)
	if err != nil {
		h.logger.Warn("Failed to load slot for notification", zap.Uint64("slot_id", booking.SlotID), zap.Error(err))
		return
	}

	if _, err := h.notificationService.EnqueueForCreator(ctx, slot, booking, kind); err != nil {
		h.logger.Warn("Failed to enqueue notification", zap.Uint64("booking_id", booking.ID), zap.Error(err))
	}
}
