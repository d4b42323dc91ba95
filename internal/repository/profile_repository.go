package repository

import (
	"context"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProfileRepository is a GORM implementation of ProfileRepository
type GormProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) FindByUserID(ctx context.Context, userID uint64) (*models.VolunteerProfile, error) {
	var profile models.VolunteerProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Save updates a loaded profile, or upserts on user_id and reloads the stored row
func (r *GormProfileRepository) Save(ctx context.Context, profile *models.VolunteerProfile, email *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if email != nil {
			if err := tx.Model(&models.User{}).Where("id = ?", profile.UserID).Update("email", *email).Error; err != nil {
				return err
			}
		}

		if profile.ID != 0 {
			return tx.Save(profile).Error
		}

		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"role", "display_name", "phone", "timezone", "notify_email", "notify_sms", "updated_at",
			}),
		}).Create(profile).Error
		if err != nil {
			return err
		}

		var stored models.VolunteerProfile
		if err := tx.Where("user_id = ?", profile.UserID).First(&stored).Error; err != nil {
			return err
		}
		*profile = stored
		return nil
	})
}
