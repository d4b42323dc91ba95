package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/logging"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
	"github.com/yukikurage/volunteer-scheduling-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken         = errors.New("username or email already exists")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrPasswordTooShort      = errors.New("password too short")
	ErrUserNotFound          = errors.New("user not found")
	ErrFailedToHashPassword  = errors.New("failed to hash password")
	ErrFailedToCreateUser    = errors.New("failed to create user")
	ErrFailedToCreateProfile = errors.New("failed to create profile")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logging.OrNop(logger),
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username string             `json:"username" validate:"required,min=3,max=150"`
	Email    string             `json:"email" validate:"required,email,max=255"`
	Password string             `json:"password"`
	Role     models.ProfileRole `json:"role" validate:"omitempty,oneof=volunteer patient"`
}

// Signup creates a new user along with their profile.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	taken, err := s.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	role := input.Role
	if role == "" {
		role = models.DefaultProfileRole
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	profile := &models.VolunteerProfile{
		Role:        role,
		DisplayName: input.Username,
		Timezone:    constants.DefaultTimezone,
		NotifyEmail: true,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		switch {
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// lost a race with a concurrent signup
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateProfile):
			return nil, ErrFailedToCreateProfile
		default:
			return nil, fmt.Errorf("failed to complete signup: %w", err)
		}
	}

	s.logger.Info("User signed up", zap.Uint64("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
