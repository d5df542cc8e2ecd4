package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"file not found", ErrFileNotFound, http.StatusNotFound, "FILE_NOT_FOUND"},
		{"duplicate case", ErrDuplicateCase, http.StatusConflict, "DUPLICATE_CASE"},
		{"wrapped invalid movement", fmt.Errorf("%w: unknown action", ErrInvalidMovement), http.StatusBadRequest, "INVALID_MOVEMENT"},
		{"self delete", ErrSelfDelete, http.StatusBadRequest, "SELF_DELETE"},
		{"incorrect password", ErrIncorrectPassword, http.StatusUnauthorized, "INCORRECT_PASSWORD"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not owner", ErrNotOwner, http.StatusForbidden, "FORBIDDEN"},
		{"unknown", fmt.Errorf("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInternalDetails(t *testing.T) {
	resp := MapErrorToHTTP(fmt.Errorf("select files: access denied for user 'root'")).ToErrorResponse()
	assert.Equal(t, "internal server error", resp.Error)
}

func TestMapErrorToHTTP_UsesSentinelMessage(t *testing.T) {
	resp := MapErrorToHTTP(ErrSelfDelete).ToErrorResponse()
	assert.Equal(t, ErrorResponse{Error: "cannot delete your own account", Code: "SELF_DELETE"}, resp)
}
