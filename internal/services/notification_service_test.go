package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

func TestNotifications_EnqueueForCreator(t *testing.T) {
	db := newTestDB(t)
	profiles := repository.NewProfileRepository(db)
	service := NewNotificationService(repository.NewNotificationRepository(db), profiles, nil)
	ctx := context.Background()

	patient := createUser(t, db, "patient", models.RolePatient)
	patient.Profile.NotifySMS = true
	patient.Profile.Phone = "555-0100"
	require.NoError(t, db.Save(patient.Profile).Error)

	volunteer := createUser(t, db, "vol", models.RoleVolunteer)
	slot := createSlot(t, db, patient, time.Now().Add(time.Hour), 1)
	booking := &models.Booking{SlotID: slot.ID, VolunteerID: &volunteer.ID, Status: models.BookingStatusConfirmed}
	require.NoError(t, db.Create(booking).Error)

	created, err := service.EnqueueForCreator(ctx, slot, booking, KindBookingConfirmed)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, models.ChannelEmail, created[0].Channel)
	assert.Equal(t, models.ChannelSMS, created[1].Channel)
	require.NotNil(t, created[0].BookingID)
	assert.Equal(t, booking.ID, *created[0].BookingID)

	listed, total, err := service.ListForUser(ctx, patient.ID, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, listed, 2)
	assert.False(t, listed[0].Delivered)
	assert.Nil(t, listed[0].SentAt)
	assert.Equal(t, KindBookingConfirmed, listed[0].Kind)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(listed[0].Payload, &payload))
	assert.Equal(t, "Groceries", payload["task_title"])
}

func TestNotifications_ChannelsFollowPreferences(t *testing.T) {
	assert.Equal(t, []models.NotificationChannel{models.ChannelEmail}, channelsFor(nil))
	assert.Empty(t, channelsFor(&models.VolunteerProfile{NotifyEmail: false, NotifySMS: true}))
	assert.Equal(t,
		[]models.NotificationChannel{models.ChannelSMS},
		channelsFor(&models.VolunteerProfile{NotifySMS: true, Phone: "555"}),
	)
}

func TestNotifications_SlotWithoutCreator(t *testing.T) {
	db := newTestDB(t)
	service := NewNotificationService(repository.NewNotificationRepository(db), repository.NewProfileRepository(db), nil)

	created, err := service.EnqueueForCreator(context.Background(), &models.Slot{Task: &models.Task{}}, &models.Booking{}, KindBookingCancelled)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestActivity_Record(t *testing.T) {
	db := newTestDB(t)
	service := NewActivityService(repository.NewActivityRepository(db), nil)
	user := createUser(t, db, "vol", models.RoleVolunteer)
	ctx := context.Background()

	require.NoError(t, service.Record(ctx, user.ID, models.ActionBookingCreated, "booking", 7, map[string]interface{}{"slot_id": 3}))

	entries, err := service.Recent(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActionBookingCreated, entries[0].Action)
	assert.Equal(t, "7", entries[0].ObjectID)
	assert.JSONEq(t, `{"slot_id":3}`, string(entries[0].Meta))
}
