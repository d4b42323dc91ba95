package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/volunteer-scheduling-api/internal/errors"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
)

type AvailabilityHandler struct {
	availabilityService *services.AvailabilityService
}

func NewAvailabilityHandler(availabilityService *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

func (h *AvailabilityHandler) ListAvailability(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	windows, err := h.availabilityService.List(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"availability": dto.ToAvailabilityDTOs(windows)})
}

func (h *AvailabilityHandler) AddAvailability(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.AddAvailabilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	input.UserID = userID

	window, err := h.availabilityService.Add(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAvailabilityDTOs([]models.Availability{*window})[0])
}

func (h *AvailabilityHandler) DeleteAvailability(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id", "availability")
	if !ok {
		return
	}

	if err := h.availabilityService.Delete(c.Request.Context(), id, userID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
