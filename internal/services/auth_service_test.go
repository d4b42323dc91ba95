package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
)

func TestSignup_CreatesUserAndProfile(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repository.NewUserRepository(db), nil)

	user, err := service.Signup(context.Background(), SignupInput{
		Username: " alice ",
		Email:    "alice@example.org",
		Password: "password123",
		Role:     models.RolePatient,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "password123", user.PasswordHash)

	var profile models.VolunteerProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.RolePatient, profile.Role)
	assert.True(t, profile.NotifyEmail)
}

func TestSignup_DefaultsToVolunteer(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repository.NewUserRepository(db), nil)

	user, err := service.Signup(context.Background(), SignupInput{Username: "bob", Email: "bob@example.org", Password: "password123"})
	require.NoError(t, err)

	var profile models.VolunteerProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.RoleVolunteer, profile.Role)
}

func TestSignup_Errors(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repository.NewUserRepository(db), nil)
	ctx := context.Background()

	_, err := service.Signup(ctx, SignupInput{Username: "carol", Email: "carol@example.org", Password: "password123"})
	require.NoError(t, err)

	_, err = service.Signup(ctx, SignupInput{Username: "carol", Email: "other@example.org", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = service.Signup(ctx, SignupInput{Username: "dave", Email: "carol@example.org", Password: "password123"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = service.Signup(ctx, SignupInput{Username: "erin", Email: "erin@example.org", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = service.Signup(ctx, SignupInput{Username: "frank", Email: "not-an-email", Password: "password123"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "email")

	_, err = service.Signup(ctx, SignupInput{Username: "gina", Email: "gina@example.org", Password: "password123", Role: "admin"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	service := NewAuthService(repository.NewUserRepository(db), nil)
	ctx := context.Background()

	created, err := service.Signup(ctx, SignupInput{Username: "alice", Email: "alice@example.org", Password: "password123"})
	require.NoError(t, err)

	user, err := service.Login(ctx, LoginInput{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = service.Login(ctx, LoginInput{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Login(ctx, LoginInput{Username: "nobody", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.GetUser(ctx, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
