package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
)

func TestProfileHandler_DefaultsWithoutProfile(t *testing.T) {
	env := newTestEnv(t)
	user := &models.User{Username: "bare", Email: "bare@example.org", PasswordHash: "x"}
	require.NoError(t, env.db.Create(user).Error)

	w := env.do(t, http.MethodGet, "/api/profile", nil, user.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var profile dto.ProfileDTO
	decode(t, w, &profile)
	assert.False(t, profile.Exists)
	assert.Equal(t, models.RoleVolunteer, profile.Role)
	assert.True(t, profile.IsVolunteer)
	assert.Equal(t, "UTC", profile.Timezone)

	w = env.do(t, http.MethodPut, "/api/profile", map[string]interface{}{
		"display_name": "Bare Bones",
		"timezone":     "Europe/Berlin",
		"notify_email": false,
	}, user.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	decode(t, w, &profile)
	assert.True(t, profile.Exists)
	assert.Equal(t, "Bare Bones", profile.DisplayName)
	assert.Equal(t, "Europe/Berlin", profile.Timezone)
	assert.False(t, profile.NotifyEmail)
	assert.Equal(t, models.RoleVolunteer, profile.Role)
}

func TestProfileHandler_UpdateErrors(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup(t, "carol", models.RolePatient)
	env.signup(t, "dave", models.RoleVolunteer)

	w := env.do(t, http.MethodPut, "/api/profile", map[string]interface{}{"timezone": "Mars/Olympus"}, user.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var apiErr apiError
	decode(t, w, &apiErr)
	assert.Contains(t, apiErr.Details, "timezone")

	w = env.do(t, http.MethodPut, "/api/profile", map[string]interface{}{"email": "dave@example.org"}, user.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAvailabilityHandler(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup(t, "erin", models.RoleVolunteer)
	other := env.signup(t, "frank", models.RoleVolunteer)

	w := env.do(t, http.MethodPost, "/api/availability", map[string]interface{}{
		"weekday":    2,
		"start_time": "09:00",
		"end_time":   "13:00",
	}, user.ID)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var window dto.AvailabilityDTO
	decode(t, w, &window)
	assert.Equal(t, "UTC", window.Timezone)

	w = env.do(t, http.MethodPost, "/api/availability", map[string]interface{}{
		"weekday":    2,
		"start_time": "13:00",
		"end_time":   "09:00",
	}, user.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodGet, "/api/availability", nil, user.ID)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Availability []dto.AvailabilityDTO `json:"availability"`
	}
	decode(t, w, &list)
	assert.Len(t, list.Availability, 1)

	path := fmt.Sprintf("/api/availability/%d", window.ID)
	w = env.do(t, http.MethodDelete, path, nil, other.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodDelete, path, nil, user.ID)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t)
	handler := NewHealthHandler(env.db, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	handler.Health(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok","redis":"disabled"}`, w.Body.String())
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	env := newTestEnv(t)
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	NewHealthHandler(env.db, nil).Health(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
