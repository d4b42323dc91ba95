package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrCreateUser is returned when creating a user fails inside the signup transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
	// ErrCreateProfile is returned when creating the profile fails inside the signup transaction.
	ErrCreateProfile = errors.New("user repository: create profile failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithProfile creates a user and the profile atomically.
func (r *GormUserRepository) CreateWithProfile(ctx context.Context, user *models.User, profile *models.VolunteerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateUser, err)
		}

		profile.UserID = user.ID

		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("%w: %w", ErrCreateProfile, err)
		}

		user.Profile = profile
		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}
