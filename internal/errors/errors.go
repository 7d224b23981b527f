package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPasswordMismatch is returned when the two registration password fields differ.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrEmailTaken is returned when a registration collides with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidRefreshToken is returned when a refresh token is malformed, expired or revoked.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrConstraint is returned when a value falls outside its enumerated or ranged domain.
	ErrConstraint = errors.New("value violates a domain constraint")

	ErrUserNotFound        = errors.New("user not found")
	ErrCaregiverNotFound   = errors.New("caregiver not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrCaregiverRequired is returned when a non-caregiver principal calls a caregiver operation.
	ErrCaregiverRequired = errors.New("caregiver profile required")
	// ErrMemberRequired is returned when a non-member principal calls a member operation.
	ErrMemberRequired = errors.New("member profile required")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

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

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are matched with errors.Is;
// the message keeps any detail added while wrapping a constraint error.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidRefreshToken.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrPasswordMismatch):
		return NewHTTPError(http.StatusBadRequest, ErrPasswordMismatch.Error(), "PASSWORD_MISMATCH")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, ErrEmailTaken.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrConstraint):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "CONSTRAINT_VIOLATION")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrCaregiverNotFound):
		return NewHTTPError(http.StatusNotFound, ErrCaregiverNotFound.Error(), "CAREGIVER_NOT_FOUND")
	case errors.Is(err, ErrMemberNotFound):
		return NewHTTPError(http.StatusNotFound, ErrMemberNotFound.Error(), "MEMBER_NOT_FOUND")
	case errors.Is(err, ErrJobNotFound):
		return NewHTTPError(http.StatusNotFound, ErrJobNotFound.Error(), "JOB_NOT_FOUND")
	case errors.Is(err, ErrAppointmentNotFound):
		return NewHTTPError(http.StatusNotFound, ErrAppointmentNotFound.Error(), "APPOINTMENT_NOT_FOUND")
	case errors.Is(err, ErrCaregiverRequired):
		return NewHTTPError(http.StatusForbidden, ErrCaregiverRequired.Error(), "CAREGIVER_REQUIRED")
	case errors.Is(err, ErrMemberRequired):
		return NewHTTPError(http.StatusForbidden, ErrMemberRequired.Error(), "MEMBER_REQUIRED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
