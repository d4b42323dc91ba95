package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/yukikurage/volunteer-scheduling-api/internal/config"
	"github.com/yukikurage/volunteer-scheduling-api/internal/database"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/router"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the dependencies shared by the commands
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

var app *App

func main() {
	rootCmd := &cobra.Command{
		Use:   "server",
		Short: "Volunteer scheduling API",
		Long:  `An HTTP API for publishing volunteer time slots and booking places on them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				_ = app.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// initApp loads configuration, builds the logger and connects to the database
func initApp() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg, logger)
	if err != nil {
		return err
	}

	app = &App{cfg: cfg, logger: logger, db: db}
	return nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return database.Migrate(app.db, app.logger)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, logger := app.cfg, app.logger

	if err := database.Migrate(app.db, logger); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)

	// Session store on Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		"",              // password (empty = no password)
		[]byte(cfg.SessionSecret),
	)
	if err != nil {
		return fmt.Errorf("failed to create Redis store: %w", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	defer redisClient.Close()

	engine := router.New(router.Dependencies{
		Config:       cfg,
		DB:           app.db,
		Redis:        redisClient,
		SessionStore: store,
		Logger:       logger,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
	}).Handler(engine)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped cleanly")
	return nil
}
