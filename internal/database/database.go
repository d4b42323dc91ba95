package database

import (
	"fmt"
	"time"

	"github.com/yukikurage/volunteer-scheduling-api/internal/config"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store selected by cfg.DBDriver
func Connect(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Info
	if cfg.IsProduction() {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		// one writer at a time
		sqlDB.SetMaxOpenConns(1)
	}

	log.Info("Database connection established", zap.String("driver", cfg.DBDriver))
	return db, nil
}

// Dialector builds the gorm dialector for the configured driver
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			cfg.DBPort,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=%d", cfg.DBPath, busyTimeoutMillis(cfg.LockTimeout))
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// Migrate creates or updates every table
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("Running database migrations...")
	err := db.AutoMigrate(
		&models.User{},
		&models.VolunteerProfile{},
		&models.Category{},
		&models.Task{},
		&models.Slot{},
		&models.Booking{},
		&models.Availability{},
		&models.Notification{},
		&models.ActivityLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db, log); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}

func busyTimeoutMillis(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return d.Milliseconds()
}
