package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"revoked refresh token", ErrInvalidRefreshToken, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN"},
		{"password mismatch", ErrPasswordMismatch, http.StatusBadRequest, "PASSWORD_MISMATCH"},
		{"wrapped email taken", fmt.Errorf("register member: %w", ErrEmailTaken), http.StatusConflict, "EMAIL_TAKEN"},
		{"job not found", ErrJobNotFound, http.StatusNotFound, "JOB_NOT_FOUND"},
		{"member required", ErrMemberRequired, http.StatusForbidden, "MEMBER_REQUIRED"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantCode, httpErr.ToErrorResponse().Code)
		})
	}
}

func TestMapErrorToHTTP_ConstraintKeepsDetail(t *testing.T) {
	err := fmt.Errorf("%w: unknown caregiving category %q", ErrConstraint, "Gardener")

	httpErr := MapErrorToHTTP(err)

	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)
	assert.Contains(t, httpErr.Message, "Gardener")
}

func TestMapErrorToHTTP_InternalDoesNotLeak(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("pq: password authentication failed"))

	assert.Equal(t, "internal server error", httpErr.Error())
}
