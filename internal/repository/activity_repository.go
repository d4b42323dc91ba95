package repository

import (
	"context"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Create appends an entry; the log is never updated
func (r *GormActivityRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GormActivityRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
