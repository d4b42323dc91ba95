package models

// Availability is a weekly window in which a user is generally free.
// Weekday follows time.Weekday (0 = Sunday); times are "HH:MM".
type Availability struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	UserID    uint64 `gorm:"not null;index" json:"user_id"`
	Weekday   int    `gorm:"not null" json:"weekday"`
	StartTime string `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string `gorm:"type:varchar(5);not null" json:"end_time"`
	Timezone  string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
