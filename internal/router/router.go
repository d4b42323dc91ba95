package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/volunteer-scheduling-api/internal/config"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/handlers"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/middleware"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the shared resources the routes are built on
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	Redis        *redis.Client
	SessionStore sessions.Store
	Logger       *zap.Logger
}

// New wires repositories, services and handlers into a gin engine
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := logging.OrNop(deps.Logger)

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	profileRepo := repository.NewProfileRepository(deps.DB)
	categoryRepo := repository.NewCategoryRepository(deps.DB)
	taskRepo := repository.NewTaskRepository(deps.DB)
	slotRepo := repository.NewSlotRepository(deps.DB)
	bookingRepo := repository.NewBookingRepository(deps.DB, cfg.LockTimeout)
	availabilityRepo := repository.NewAvailabilityRepository(deps.DB)
	notificationRepo := repository.NewNotificationRepository(deps.DB)
	activityRepo := repository.NewActivityRepository(deps.DB)

	// Services
	authService := services.NewAuthService(userRepo, logger)
	profileService := services.NewProfileService(profileRepo, logger)
	categoryService := services.NewCategoryService(categoryRepo)
	slotService := services.NewSlotService(slotRepo, profileRepo, cfg.CalendarWindow(), logger)
	taskService := services.NewTaskService(taskRepo, slotRepo, logger)
	bookingService := services.NewBookingService(slotRepo, bookingRepo, logger)
	availabilityService := services.NewAvailabilityService(availabilityRepo)
	notificationService := services.NewNotificationService(notificationRepo, profileRepo, logger)
	activityService := services.NewActivityService(activityRepo, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, activityService)
	profileHandler := handlers.NewProfileHandler(profileService, activityService)
	slotHandler := handlers.NewSlotHandler(slotService, categoryService, activityService)
	bookingHandler := handlers.NewBookingHandler(bookingService, slotService, notificationService, activityService, logger)
	taskHandler := handlers.NewTaskHandler(taskService, activityService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	activityHandler := handlers.NewActivityHandler(activityService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Redis)

	bookingLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.GET("/profile", profileHandler.GetProfile)
			protected.PUT("/profile", profileHandler.UpdateProfile)

			protected.GET("/categories", slotHandler.ListCategories)
			protected.GET("/calendar", slotHandler.Calendar)
			protected.GET("/activity", activityHandler.ListActivity)
			protected.GET("/notifications", notificationHandler.ListNotifications)
		}

		slots := api.Group("/slots")
		slots.Use(middleware.RequireAuth())
		{
			slots.POST("", slotHandler.CreateSlot)
			slots.GET("/:id", middleware.RequireSlot(slotService), slotHandler.GetSlot)
			slots.PATCH("/:id/status", slotHandler.UpdateSlotStatus)
			slots.POST("/:id/book", bookingLimiter.Limit(), bookingHandler.BookSlot)
		}

		bookings := api.Group("/bookings")
		bookings.Use(middleware.RequireAuth())
		{
			bookings.GET("", bookingHandler.ListBookings)
			bookings.POST("/:id/cancel", bookingLimiter.Limit(), bookingHandler.CancelBooking)
		}

		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.POST("/:id/slots", taskHandler.GenerateSlots)
		}

		availability := api.Group("/availability")
		availability.Use(middleware.RequireAuth())
		{
			availability.GET("", availabilityHandler.ListAvailability)
			availability.POST("", availabilityHandler.AddAvailability)
			availability.DELETE("/:id", availabilityHandler.DeleteAvailability)
		}
	}

	return r
}
