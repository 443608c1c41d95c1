package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	rule := NewViolation("title_length", "title must be between 3 and 200 characters")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"app error passes through", Conflict("already_voted", "dup", nil), http.StatusConflict, "already_voted"},
		{"wrapped violation", fmt.Errorf("create poll: %w", rule), http.StatusUnprocessableEntity, "title_length"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromError(tt.err)
			assert.Equal(t, tt.status, got.StatusCode())
			assert.Equal(t, tt.code, got.Code)
		})
	}

	assert.Nil(t, FromError(nil))
}

func TestViolationIdentity(t *testing.T) {
	a := NewViolation("too_few_options", "x")
	b := NewViolation("too_few_options", "x")

	assert.ErrorIs(t, fmt.Errorf("wrap: %w", a), a)
	assert.NotErrorIs(t, a, b)
}

func TestZeroStatusDefaultsToInternal(t *testing.T) {
	var e *AppError
	assert.Equal(t, http.StatusInternalServerError, e.StatusCode())
	assert.Equal(t, http.StatusInternalServerError, (&AppError{}).StatusCode())
}
