package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/volunteer-scheduling-api/internal/errors"
	"github.com/yukikurage/volunteer-scheduling-api/internal/middleware"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
)

type SlotHandler struct {
	slotService     *services.SlotService
	categoryService *services.CategoryService
	activityService *services.ActivityService
}

func NewSlotHandler(slotService *services.SlotService, categoryService *services.CategoryService, activityService *services.ActivityService) *SlotHandler {
	return &SlotHandler{
		slotService:     slotService,
		categoryService: categoryService,
		activityService: activityService,
	}
}

// CreateSlot creates an open slot, finding or creating its task and category
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.CreateSlotInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	input.CreatorID = userID

	slot, err := h.slotService.CreateSlot(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recordActivity(c, h.activityService, userID, models.ActionSlotCreated, "slot", slot.ID, map[string]interface{}{
		"task_id": slot.TaskID,
	})
	c.JSON(http.StatusCreated, dto.ToSlotDTO(*slot))
}

// GetSlot returns a slot by ID
// Slot is already loaded with relations by RequireSlot middleware
func (h *SlotHandler) GetSlot(c *gin.Context) {
	slot, ok := middleware.GetSlot(c)
	if !ok {
		apierrors.InternalError(c, "Slot not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToSlotDTO(*slot))
}

// UpdateSlotStatus sets the administrative status of one of the caller's slots
func (h *SlotHandler) UpdateSlotStatus(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	slotID, ok := idParam(c, "id", "slot")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.SlotStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if !req.Status.Valid() {
		apierrors.BadRequestWithDetails(c, "Invalid status", map[string]string{
			"status": "must be one of open, filled, cancelled",
		})
		return
	}

	slot, err := h.slotService.UpdateSlotStatus(c.Request.Context(), slotID, userID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recordActivity(c, h.activityService, userID, models.ActionSlotStatus, "slot", slot.ID, map[string]interface{}{
		"status": slot.Status,
	})
	c.JSON(http.StatusOK, dto.ToSlotDTO(*slot))
}

// Calendar lists the open slots in the look-ahead window
func (h *SlotHandler) Calendar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	calendar, err := h.slotService.Calendar(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCalendarResponse(calendar))
}

func (h *SlotHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": dto.ToCategoryDTOs(categories)})
}
