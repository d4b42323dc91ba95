package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/database"
	"github.com/yukikurage/volunteer-scheduling-api/internal/middleware"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserHeader = "X-Test-User"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine

	authService *services.AuthService
	slotService *services.SlotService
	auth        *AuthHandler
}

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestEnv wires every handler against an in-memory database. Requests
// carrying X-Test-User are treated as authenticated by that user ID.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, zap.NewNop()))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	slotRepo := repository.NewSlotRepository(db)

	authService := services.NewAuthService(userRepo, nil)
	slotService := services.NewSlotService(slotRepo, profileRepo, constants.DefaultCalendarWindow, nil)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), slotRepo, nil)
	bookingService := services.NewBookingService(slotRepo, repository.NewBookingRepository(db, time.Second), nil)
	notificationService := services.NewNotificationService(repository.NewNotificationRepository(db), profileRepo, nil)
	activityService := services.NewActivityService(repository.NewActivityRepository(db), nil)

	env := &testEnv{
		db:          db,
		authService: authService,
		slotService: slotService,
		auth:        NewAuthHandler(authService, activityService),
	}

	profile := NewProfileHandler(services.NewProfileService(profileRepo, nil), activityService)
	slots := NewSlotHandler(slotService, services.NewCategoryService(repository.NewCategoryRepository(db)), activityService)
	bookings := NewBookingHandler(bookingService, slotService, notificationService, activityService, nil)
	tasks := NewTaskHandler(taskService, activityService)
	availability := NewAvailabilityHandler(services.NewAvailabilityService(repository.NewAvailabilityRepository(db)))
	notifications := NewNotificationHandler(notificationService)
	activity := NewActivityHandler(activityService)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))
	r.Use(func(c *gin.Context) {
		if id, err := strconv.ParseUint(c.GetHeader(testUserHeader), 10, 64); err == nil {
			c.Set(constants.ContextKeyUserID, id)
		}
	})

	r.POST("/api/auth/signup", env.auth.Signup)
	r.POST("/api/auth/login", env.auth.Login)
	r.POST("/api/auth/logout", env.auth.Logout)
	r.GET("/api/auth/me", env.auth.GetCurrentUser)
	r.GET("/api/profile", profile.GetProfile)
	r.PUT("/api/profile", profile.UpdateProfile)
	r.GET("/api/categories", slots.ListCategories)
	r.GET("/api/calendar", slots.Calendar)
	r.POST("/api/slots", slots.CreateSlot)
	r.GET("/api/slots/:id", middleware.RequireSlot(slotService), slots.GetSlot)
	r.PATCH("/api/slots/:id/status", slots.UpdateSlotStatus)
	r.POST("/api/slots/:id/book", bookings.BookSlot)
	r.GET("/api/bookings", bookings.ListBookings)
	r.POST("/api/bookings/:id/cancel", bookings.CancelBooking)
	r.GET("/api/tasks", tasks.ListTasks)
	r.GET("/api/tasks/:id", tasks.GetTask)
	r.PATCH("/api/tasks/:id", tasks.UpdateTask)
	r.POST("/api/tasks/:id/slots", tasks.GenerateSlots)
	r.GET("/api/availability", availability.ListAvailability)
	r.POST("/api/availability", availability.AddAvailability)
	r.DELETE("/api/availability/:id", availability.DeleteAvailability)
	r.GET("/api/notifications", notifications.ListNotifications)
	r.GET("/api/activity", activity.ListActivity)

	env.router = r
	return env
}

// signup creates a user with a profile of the given role
func (e *testEnv) signup(t *testing.T, username string, role models.ProfileRole) *models.User {
	t.Helper()

	user, err := e.authService.Signup(context.Background(), services.SignupInput{
		Username: username,
		Email:    username + "@example.org",
		Password: "supersecret",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

// do sends a JSON request, authenticated as userID when it is non-zero
func (e *testEnv) do(t *testing.T, method, path string, body interface{}, userID uint64) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set(testUserHeader, strconv.FormatUint(userID, 10))
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

// apiError mirrors the error envelope
type apiError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func slotBody(title string, start time.Time, capacity int) map[string]interface{} {
	return map[string]interface{}{
		"title":    title,
		"start_ts": start.UTC().Format(time.RFC3339),
		"end_ts":   start.Add(time.Hour).UTC().Format(time.RFC3339),
		"capacity": capacity,
		"category": "Shopping",
		"location": "Main St",
	}
}
