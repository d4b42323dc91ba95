package utils

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ParseClock parses an "HH:MM" wall-clock time into minutes after midnight
func ParseClock(value string) (int, error) {
	t, err := time.Parse(clockLayout, value)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}
