package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/volunteer-scheduling-api/internal/constants"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"

	// Booking errors
	ErrCodeSlotFull      = "SLOT_FULL"
	ErrCodeAlreadyBooked = "ALREADY_BOOKED"
	ErrCodeContention    = "CONTENTION"

	// Service errors
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

func respond(c *gin.Context, status int, code, message, fallback string) {
	if message == "" {
		message = fallback
	}
	RespondWithError(c, status, NewAPIError(code, message))
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	respond(c, http.StatusUnauthorized, ErrCodeUnauthorized, message, "Authentication required")
}

// InvalidCredentials sends a 401 response for a failed login
func InvalidCredentials(c *gin.Context) {
	respond(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "", "Invalid username or password")
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	respond(c, http.StatusForbidden, ErrCodeForbidden, message, "Access denied")
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrCodeNotFound, message, "Resource not found")
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	respond(c, http.StatusBadRequest, ErrCodeInvalidInput, message, "Invalid request")
}

// BadRequestWithDetails sends a 400 response with field level details
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	RespondWithError(c, http.StatusBadRequest, NewAPIErrorWithDetails(ErrCodeInvalidInput, message, details))
}

// SlotFull sends a 400 response for a slot without free places
func SlotFull(c *gin.Context) {
	respond(c, http.StatusBadRequest, ErrCodeSlotFull, "", "This slot is already full")
}

// AlreadyBooked sends a 400 response for a repeated booking
func AlreadyBooked(c *gin.Context) {
	respond(c, http.StatusBadRequest, ErrCodeAlreadyBooked, "", "You have already booked this slot")
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	respond(c, http.StatusConflict, ErrCodeConflict, message, "Resource conflict")
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context) {
	respond(c, http.StatusTooManyRequests, ErrCodeRateLimited, "", "Too many requests")
}

// Contention sends a retryable 503 response
func Contention(c *gin.Context) {
	c.Header("Retry-After", constants.ContentionRetryAfterSecs)
	respond(c, http.StatusServiceUnavailable, ErrCodeContention, "", "The slot is busy, please retry")
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	respond(c, http.StatusInternalServerError, ErrCodeInternalError, message, "Internal server error")
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	respond(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message, "Service temporarily unavailable")
}
