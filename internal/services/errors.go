package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrSlotFull         = errors.New("slot is full")
	ErrDuplicateBooking = errors.New("slot already booked by this volunteer")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSlotNotFound     = errors.New("slot not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidInput     = errors.New("invalid input")
	ErrLockContention   = errors.New("slot is locked by another request")
	ErrPermissionDenied = errors.New("permission denied")
)

// IsRetryable reports whether the same call may succeed if repeated unchanged
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockContention)
}

// ValidationError carries per-field messages. It unwraps to the sentinel
// describing the failure, ErrInvalidTimeRange or ErrInvalidInput.
type ValidationError struct {
	Fields map[string]string
	err    error
}

func newValidationError(err error, field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}, err: err}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", e.err, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.err
}
