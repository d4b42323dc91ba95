package repository

import (
	"context"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"gorm.io/gorm"
)

// GormAvailabilityRepository is a GORM implementation of AvailabilityRepository
type GormAvailabilityRepository struct {
	db *gorm.DB
}

// NewAvailabilityRepository creates a new AvailabilityRepository
func NewAvailabilityRepository(db *gorm.DB) AvailabilityRepository {
	return &GormAvailabilityRepository{db: db}
}

func (r *GormAvailabilityRepository) Create(ctx context.Context, availability *models.Availability) error {
	return r.db.WithContext(ctx).Create(availability).Error
}

func (r *GormAvailabilityRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Availability, error) {
	var windows []models.Availability
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *GormAvailabilityRepository) DeleteOwned(ctx context.Context, id, userID uint64) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Availability{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
