package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns the notifications queued for the caller
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	notifications, total, err := h.notificationService.ListForUser(c.Request.Context(), userID, params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationListResponse(notifications, params, total))
}
