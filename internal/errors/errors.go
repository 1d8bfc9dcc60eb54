package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Unknown email and wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidRole is returned when the requested role is not recognised.
	ErrInvalidRole = errors.New("invalid role")
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidDoctor is returned when a booking references a user that
	// does not exist or is not a doctor.
	ErrInvalidDoctor = errors.New("invalid doctor")
	// ErrAppointmentNotFound is returned when an appointment is missing or
	// not owned by the caller. Ownership mismatches are reported the same
	// way so callers cannot probe for other users' records.
	ErrAppointmentNotFound = errors.New("appointment not found")
	// ErrInvalidStatus is returned when a status value or transition is
	// not allowed by the workflow.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrNotCompleted is returned when reviewing an appointment that has
	// not been completed.
	ErrNotCompleted = errors.New("can only review completed appointments")
	// ErrAlreadyReviewed is returned on a second review attempt.
	ErrAlreadyReviewed = errors.New("appointment already reviewed")
	// ErrInvalidRating is returned when the rating is outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidDoctor):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_DOCTOR")
	case errors.Is(err, ErrAppointmentNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "APPOINTMENT_NOT_FOUND")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrNotCompleted):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NOT_COMPLETED")
	case errors.Is(err, ErrAlreadyReviewed):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_REVIEWED")
	case errors.Is(err, ErrInvalidRating):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_RATING")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
