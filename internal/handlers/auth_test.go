package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/dto"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
)

func TestAuthHandler_Signup(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.org",
		"password": "supersecret",
		"role":     "patient",
	}, 0)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var response dto.UserDTO
	decode(t, w, &response)
	assert.Equal(t, "newuser", response.Username)

	var profile models.VolunteerProfile
	require.NoError(t, env.db.Where("user_id = ?", response.ID).First(&profile).Error)
	assert.Equal(t, models.RolePatient, profile.Role)

	var activity int64
	env.db.Model(&models.ActivityLog{}).Where("action = ?", models.ActionUserSignedUp).Count(&activity)
	assert.Equal(t, int64(1), activity)
}

func TestAuthHandler_SignupErrors(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "taken", models.RoleVolunteer)

	tests := []struct {
		name string
		body map[string]string
		code int
		want string
	}{
		{"missing fields", map[string]string{"username": "x"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"short password", map[string]string{"username": "shorty", "email": "s@example.org", "password": "abc"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad email", map[string]string{"username": "mailer", "email": "nope", "password": "supersecret"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown role", map[string]string{"username": "admin", "email": "a@example.org", "password": "supersecret", "role": "admin"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"duplicate", map[string]string{"username": "taken", "email": "other@example.org", "password": "supersecret"}, http.StatusConflict, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/auth/signup", tt.body, 0)
			assert.Equal(t, tt.code, w.Code)

			var body apiError
			decode(t, w, &body)
			assert.Equal(t, tt.want, body.Code)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "existing", models.RoleVolunteer)

	w := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "supersecret",
	}, 0)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	decode(t, w, &response)
	assert.Equal(t, "existing", response.Username)
	assert.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")

	w = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "existing",
		"password": "wrong-password",
	}, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body apiError
	decode(t, w, &body)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/logout", nil, 0)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out")
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := newTestEnv(t)
	user := env.signup(t, "current-user", models.RoleVolunteer)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.auth.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	decode(t, w, &response)
	assert.Equal(t, user.Username, response.Username)
	assert.Equal(t, "current-user@example.org", response.Email)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	env.auth.GetCurrentUser(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
