package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrNoReport", ErrNoReport},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrSearchUnavailable", ErrSearchUnavailable},
		{"ErrInvalidResponse", ErrInvalidResponse},
		{"ErrRenderFailed", ErrRenderFailed},
		{"ErrUnauthorized", ErrUnauthorized},
		{"ErrForbidden", ErrForbidden},
		{"ErrNotFound", ErrNotFound},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrNoReport(t *testing.T) {
	assert.Equal(t, "no report text or file provided", ErrNoReport.Error())
	assert.False(t, errors.Is(ErrNoReport, ErrInvalidInput))
}

func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("extract %q: %w", ".pages", ErrUnsupportedType)
	assert.True(t, errors.Is(wrapped, ErrUnsupportedType))
	assert.Contains(t, wrapped.Error(), "unsupported type")
}
