package models

import (
	"time"
)

type Task struct {
	ID                     uint64    `gorm:"primarykey" json:"id"`
	Title                  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_tasks_creator_title" json:"title"`
	Description            string    `gorm:"type:text" json:"description"`
	CategoryID             *uint64   `json:"category_id"`
	CreatedByID            *uint64   `gorm:"uniqueIndex:idx_tasks_creator_title" json:"created_by_id"`
	DefaultDurationMinutes *int      `json:"default_duration_minutes"`
	DefaultCapacity        int       `gorm:"not null;default:1" json:"default_capacity"`
	RecurrenceRule         string    `gorm:"type:text" json:"recurrence_rule"`
	Timezone               string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	IsPublic               bool      `gorm:"not null" json:"is_public"`
	Active                 bool      `gorm:"not null" json:"active"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`

	// Relations
	Category  *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	CreatedBy *User     `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
	Slots     []Slot    `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"slots,omitempty"`
}
