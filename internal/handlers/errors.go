package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	apierrors "github.com/yukikurage/volunteer-scheduling-api/internal/errors"
	"github.com/yukikurage/volunteer-scheduling-api/internal/middleware"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
)

// respondServiceError maps a service error onto the API error envelope
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Unwrap().Error(), validationErr.Fields)
	case errors.Is(err, services.ErrSlotFull):
		apierrors.SlotFull(c)
	case errors.Is(err, services.ErrDuplicateBooking):
		apierrors.AlreadyBooked(c)
	case errors.Is(err, services.ErrLockContention):
		apierrors.Contention(c)
	case errors.Is(err, services.ErrSlotNotFound),
		errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrAvailabilityNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidTimeRange),
		errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, capitalize(err.Error()))
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}

func capitalize(message string) string {
	if message == "" {
		return message
	}
	return strings.ToUpper(message[:1]) + message[1:]
}

// currentUser returns the session user or answers 401
func currentUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// idParam parses a numeric path parameter or answers 400
func idParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}
