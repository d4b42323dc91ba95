package dto

import (
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
	"github.com/yukikurage/volunteer-scheduling-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// ProfileDTO represents the caller's profile. Exists is false for users that
// never saved one; Role then reports the default.
type ProfileDTO struct {
	UserID      uint64             `json:"user_id"`
	Exists      bool               `json:"exists"`
	Role        models.ProfileRole `json:"role"`
	IsVolunteer bool               `json:"is_volunteer"`
	IsPatient   bool               `json:"is_patient"`
	DisplayName string             `json:"display_name"`
	Phone       string             `json:"phone"`
	Timezone    string             `json:"timezone"`
	NotifyEmail bool               `json:"notify_email"`
	NotifySMS   bool               `json:"notify_sms"`
}

// ViewerDTO carries the role flags shown alongside the calendar
type ViewerDTO struct {
	Role        models.ProfileRole `json:"role"`
	HasProfile  bool               `json:"has_profile"`
	IsVolunteer bool               `json:"is_volunteer"`
	IsPatient   bool               `json:"is_patient"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToProfileDTO converts an optional profile; defaults fill in a missing one
func ToProfileDTO(userID uint64, profile models.OptionalProfile) ProfileDTO {
	dto := ProfileDTO{
		UserID:      userID,
		Exists:      profile.Exists(),
		Role:        profile.Role(),
		IsVolunteer: profile.IsVolunteer(),
		IsPatient:   profile.IsPatient(),
		Timezone:    constants.DefaultTimezone,
		NotifyEmail: true,
	}

	if p := profile.Profile; p != nil {
		dto.DisplayName = p.DisplayName
		dto.Phone = p.Phone
		dto.Timezone = p.Timezone
		dto.NotifyEmail = p.NotifyEmail
		dto.NotifySMS = p.NotifySMS
	}

	return dto
}

func ToViewerDTO(profile models.OptionalProfile) ViewerDTO {
	return ViewerDTO{
		Role:        profile.Role(),
		HasProfile:  profile.Exists(),
		IsVolunteer: profile.IsVolunteer(),
		IsPatient:   profile.IsPatient(),
	}
}
