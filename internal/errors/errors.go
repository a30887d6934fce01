package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrIdeaNotFound is returned when an idea is not found.
	ErrIdeaNotFound = errors.New("idea not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned for a bad username or password.
	// Unknown user and wrong password share it so logins give no
	// enumeration signal.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidCategory is returned when an idea category is outside the enum.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrAlreadyVoted is returned when a user votes twice for the same idea.
	ErrAlreadyVoted = errors.New("already voted for this idea")
	// ErrIdeaFrozen is returned when voting on a frozen idea.
	ErrIdeaFrozen = errors.New("idea is frozen")
	// ErrUsernameTaken is returned when creating a user with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidRole is returned when a user role is outside the enum.
	ErrInvalidRole = errors.New("invalid role")
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

// MapErrorToHTTP maps domain errors to HTTP errors. Storage and connectivity
// failures fall through to a generic 500 so internals never leak.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrIdeaNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "IDEA_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CATEGORY")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrAlreadyVoted):
		return NewHTTPError(http.StatusConflict, err.Error(), "ALREADY_VOTED")
	case errors.Is(err, ErrIdeaFrozen):
		return NewHTTPError(http.StatusConflict, err.Error(), "IDEA_FROZEN")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "USERNAME_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
