package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	apierrors "github.com/yukikurage/volunteer-scheduling-api/internal/errors"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
)

// RequireSlot loads the slot named by the :id parameter, with its task,
// category and bookings, and stores it in the context.
func RequireSlot(slotService *services.SlotService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slotID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid slot ID")
			c.Abort()
			return
		}

		slot, err := slotService.GetSlot(c.Request.Context(), slotID)
		if err != nil {
			if errors.Is(err, services.ErrSlotNotFound) {
				apierrors.NotFound(c, "Slot not found")
			} else {
				apierrors.InternalError(c, "Failed to load slot")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeySlot, slot)
		c.Next()
	}
}

// GetSlot retrieves the slot stored by RequireSlot
func GetSlot(c *gin.Context) (*models.Slot, bool) {
	value, exists := c.Get(constants.ContextKeySlot)
	if !exists {
		return nil, false
	}
	slot, ok := value.(*models.Slot)
	return slot, ok
}
