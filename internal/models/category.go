package models

type Category struct {
	ID                     uint64 `gorm:"primarykey" json:"id"`
	Name                   string `gorm:"type:varchar(100);not null" json:"name"`
	Slug                   string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Color                  string `gorm:"type:varchar(20)" json:"color"`
	DefaultDurationMinutes *int   `json:"default_duration_minutes"`
}
