package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
)

func TestAvailability_AddListDelete(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(repository.NewAvailabilityRepository(db))
	user := createUser(t, db, "vol", models.RoleVolunteer)
	other := createUser(t, db, "other", models.RoleVolunteer)
	ctx := context.Background()

	monday, err := service.Add(ctx, AddAvailabilityInput{UserID: user.ID, Weekday: 1, StartTime: "09:00", EndTime: "12:30"})
	require.NoError(t, err)
	assert.Equal(t, "UTC", monday.Timezone)

	_, err = service.Add(ctx, AddAvailabilityInput{UserID: user.ID, Weekday: 0, StartTime: "14:00", EndTime: "18:00", Timezone: "Europe/Paris"})
	require.NoError(t, err)

	windows, err := service.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, 0, windows[0].Weekday)

	assert.ErrorIs(t, service.Delete(ctx, monday.ID, other.ID), ErrAvailabilityNotFound)
	require.NoError(t, service.Delete(ctx, monday.ID, user.ID))
	assert.ErrorIs(t, service.Delete(ctx, monday.ID, user.ID), ErrAvailabilityNotFound)

	windows, err = service.List(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, windows, 1)
}

func TestAvailability_Validation(t *testing.T) {
	db := newTestDB(t)
	service := NewAvailabilityService(repository.NewAvailabilityRepository(db))
	ctx := context.Background()

	tests := []struct {
		name  string
		input AddAvailabilityInput
		want  error
	}{
		{"weekday out of range", AddAvailabilityInput{UserID: 1, Weekday: 7, StartTime: "09:00", EndTime: "10:00"}, ErrInvalidInput},
		{"bad clock", AddAvailabilityInput{UserID: 1, Weekday: 1, StartTime: "9am", EndTime: "10:00"}, ErrInvalidInput},
		{"end before start", AddAvailabilityInput{UserID: 1, Weekday: 1, StartTime: "10:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		{"empty window", AddAvailabilityInput{UserID: 1, Weekday: 1, StartTime: "10:00", EndTime: "10:00"}, ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Add(ctx, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
