package models

import "time"

type ProfileRole string

const (
	RoleVolunteer ProfileRole = "volunteer"
	RolePatient   ProfileRole = "patient"

	// DefaultProfileRole applies to users that never saved a profile
	DefaultProfileRole = RoleVolunteer
)

// Valid reports whether r is one of the declared roles
func (r ProfileRole) Valid() bool {
	return r == RoleVolunteer || r == RolePatient
}

type VolunteerProfile struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	UserID      uint64      `gorm:"uniqueIndex;not null" json:"user_id"`
	Role        ProfileRole `gorm:"type:varchar(20);not null;default:'volunteer'" json:"role"`
	DisplayName string      `gorm:"type:varchar(200)" json:"display_name"`
	Phone       string      `gorm:"type:varchar(30)" json:"phone"`
	Timezone    string      `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	NotifyEmail bool        `gorm:"not null" json:"notify_email"`
	NotifySMS   bool        `gorm:"not null" json:"notify_sms"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// OptionalProfile holds a profile that may not have been created yet.
type OptionalProfile struct {
	Profile *VolunteerProfile
}

// Exists reports whether a stored profile backs this value
func (p OptionalProfile) Exists() bool {
	return p.Profile != nil
}

// Role returns the stored role, or DefaultProfileRole when there is no profile
func (p OptionalProfile) Role() ProfileRole {
	if p.Profile == nil || !p.Profile.Role.Valid() {
		return DefaultProfileRole
	}
	return p.Profile.Role
}

func (p OptionalProfile) IsPatient() bool {
	return p.Role() == RolePatient
}

func (p OptionalProfile) IsVolunteer() bool {
	return p.Role() == RoleVolunteer
}
