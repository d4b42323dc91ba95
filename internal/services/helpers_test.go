package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/volunteer-scheduling-api/internal/database"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database. A single connection makes
// concurrent transactions queue behind each other as row locks would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

// createUser creates a user; an empty role leaves the user without a profile
func createUser(t *testing.T, db *gorm.DB, username string, role models.ProfileRole) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.org", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	if role != "" {
		profile := &models.VolunteerProfile{UserID: user.ID, Role: role, Timezone: "UTC", NotifyEmail: true}
		require.NoError(t, db.Create(profile).Error)
		user.Profile = profile
	}
	return user
}

// createSlot adds one slot to creator's "Groceries" task, creating the task on first use
func createSlot(t *testing.T, db *gorm.DB, creator *models.User, start time.Time, capacity int) *models.Slot {
	t.Helper()

	task := &models.Task{}
	err := db.
		Where(models.Task{Title: "Groceries", CreatedByID: &creator.ID}).
		Attrs(models.Task{DefaultCapacity: capacity, Timezone: "UTC", IsPublic: true, Active: true}).
		FirstOrCreate(task).Error
	require.NoError(t, err)

	slot := &models.Slot{
		TaskID:   task.ID,
		StartTS:  start.UTC(),
		EndTS:    start.UTC().Add(time.Hour),
		Capacity: capacity,
		Status:   models.SlotStatusOpen,
	}
	require.NoError(t, db.Create(slot).Error)
	slot.Task = task
	return slot
}

func reloadSlot(t *testing.T, db *gorm.DB, id uint64) models.Slot {
	t.Helper()
	var slot models.Slot
	require.NoError(t, db.First(&slot, id).Error)
	return slot
}

func countBookings(t *testing.T, db *gorm.DB, slotID uint64) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.Booking{}).Where("slot_id = ?", slotID).Count(&count).Error)
	return count
}
