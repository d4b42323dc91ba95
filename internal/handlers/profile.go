package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	apierrors "github.com/yukikurage/volunteer-scheduling-api/internal/errors"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
)

type ProfileHandler struct {
	profileService  *services.ProfileService
	activityService *services.ActivityService
}

func NewProfileHandler(profileService *services.ProfileService, activityService *services.ActivityService) *ProfileHandler {
	return &ProfileHandler{
		profileService:  profileService,
		activityService: activityService,
	}
}

// GetProfile returns the caller's profile; users without one get the defaults
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(userID, profile))
}

// UpdateProfile edits the caller's profile, creating it on first write
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	input.UserID = userID

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recordActivity(c, h.activityService, userID, models.ActionProfileUpdated, "profile", profile.ID, nil)
	c.JSON(http.StatusOK, dto.ToProfileDTO(userID, models.OptionalProfile{Profile: profile}))
}
