package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// Composite indexes the struct tags do not express
var extraIndexes = []index{
	// calendar: open slots ordered by start
	{"slots", "idx_slots_status_start_ts", "status, start_ts"},
	// "my bookings"
	{"bookings", "idx_bookings_volunteer_id", "volunteer_id"},
	{"notifications", "idx_notifications_user_created", "user_id, created_at"},
	{"activity_logs", "idx_activity_logs_object", "object_type, object_id"},
	{"availabilities", "idx_availabilities_user_weekday", "user_id, weekday"},
}

// AddIndexes creates the composite indexes that are missing
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()

	for _, idx := range extraIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}
