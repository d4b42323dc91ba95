package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
)

type ActivityHandler struct {
	activityService *services.ActivityService
}

func NewActivityHandler(activityService *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListActivity returns the caller's most recent activity entries
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil || limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	entries, err := h.activityService.Recent(c.Request.Context(), userID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}

// recordActivity appends an audit entry after a successful operation.
// Failures are logged by the service and never change the response.
func recordActivity(c *gin.Context, activityService *services.ActivityService, userID uint64, action, objectType string, objectID uint64, meta map[string]interface{}) {
	if activityService == nil {
		return
	}
	_ = activityService.Record(c.Request.Context(), userID, action, objectType, objectID, meta)
}
