package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "volunteer_session"
	ContextKeyUserID  = "user_id"
	ContextKeySlot    = "slot"
	ContextKeyRequest = "request_id"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Slots
const (
	MinSlotCapacity          = 1
	MaxSlotCapacity          = 10
	DefaultCalendarWindow    = 30 * 24 * time.Hour
	DefaultSlotDuration      = time.Hour
	MaxGeneratedOccurrences  = 100
	MaxRecurrenceScan        = 100000
	DefaultTimezone          = "UTC"
	CategoryNameFallback     = "N/A"
	DefaultLockTimeout       = 5 * time.Second
	ContentionRetryAfterSecs = "1"
)
