package database

import (
	"time"

	"gorm.io/gorm"

	"github.com/yukikurage/volunteer-scheduling-api/internal/utils"
)

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// StartingBetween keeps slots whose start lies in [from, to]
func StartingBetween(from, to time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("slots.start_ts >= ? AND slots.start_ts <= ?", from, to)
	}
}
