package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/volunteer-scheduling-api/internal/errors"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

type TaskHandler struct {
	taskService     *services.TaskService
	activityService *services.ActivityService
}

func NewTaskHandler(taskService *services.TaskService, activityService *services.ActivityService) *TaskHandler {
	return &TaskHandler{
		taskService:     taskService,
		activityService: activityService,
	}
}

// ListTasks returns the task templates created by the current user
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	tasks, total, err := h.taskService.ListTasks(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns one of the current user's tasks
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id", "task")
	if !ok {
		return
	}

	task, err := h.taskService.GetOwnedTask(c.Request.Context(), taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask updates an existing task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id", "task")
	if !ok {
		return
	}

	var input services.UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, userID, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// GenerateSlots materialises the task's recurrence rule into slots
func (h *TaskHandler) GenerateSlots(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "id", "task")
	if !ok {
		return
	}

	type GenerateSlotsRequest struct {
		From  time.Time `json:"from" binding:"required"`
		Until time.Time `json:"until" binding:"required"`
	}

	var req GenerateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	slots, err := h.taskService.GenerateRecurringSlots(c.Request.Context(), services.GenerateSlotsInput{
		TaskID:  taskID,
		ActorID: userID,
		From:    req.From,
		Until:   req.Until,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recordActivity(c, h.activityService, userID, models.ActionSlotsGenerated, "task", taskID, map[string]interface{}{
		"created": len(slots),
	})
	c.JSON(http.StatusCreated, gin.H{
		"slots": dto.ToSlotDTOs(slots),
		"count": len(slots),
	})
}
