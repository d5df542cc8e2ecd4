package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrFileNotFound is returned when a file is not found.
	ErrFileNotFound = errors.New("file not found")
	// ErrDuplicateCase is returned when another file already carries the case identifier.
	ErrDuplicateCase = errors.New("a file with the same case code, case number and case year already exists")
	// ErrInvalidStatus is returned when a file status is not archived, retrieved or destroyed.
	ErrInvalidStatus = errors.New("invalid file status")
	// ErrInvalidMovement is returned when a movement cannot be recorded as requested.
	ErrInvalidMovement = errors.New("invalid movement")
	// ErrInvalidSearchMode is returned when a search mode is not case, party or status.
	ErrInvalidSearchMode = errors.New("invalid search mode")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when trying to register an existing email.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrIncorrectPassword is returned when the old password does not match on change.
	ErrIncorrectPassword = errors.New("old password is incorrect")
	// ErrWeakPassword is returned when a new password is too short.
	ErrWeakPassword = errors.New("password must be at least 6 characters")
	// ErrInvalidRole is returned when a role is not admin or user.
	ErrInvalidRole = errors.New("invalid role")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")

	// ErrUnauthenticated is returned when a request carries no valid session.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the session lacks the required role.
	ErrForbidden = errors.New("admin access required")
	// ErrNotOwner is returned when a user acts on another user's account.
	ErrNotOwner = errors.New("not allowed to access another user's account")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
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

var httpMappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrFileNotFound, http.StatusNotFound, "FILE_NOT_FOUND"},
	{ErrDuplicateCase, http.StatusConflict, "DUPLICATE_CASE"},
	{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{ErrInvalidMovement, http.StatusBadRequest, "INVALID_MOVEMENT"},
	{ErrInvalidSearchMode, http.StatusBadRequest, "INVALID_SEARCH_MODE"},
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrIncorrectPassword, http.StatusUnauthorized, "INCORRECT_PASSWORD"},
	{ErrWeakPassword, http.StatusBadRequest, "WEAK_PASSWORD"},
	{ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{ErrSelfDelete, http.StatusBadRequest, "SELF_DELETE"},
	{ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
	{ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{ErrNotOwner, http.StatusForbidden, "FORBIDDEN"},
	{ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
}

// MapErrorToHTTP maps domain errors to HTTP errors. Wrapped errors are matched
// with errors.Is; anything unknown becomes a generic 500.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range httpMappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
