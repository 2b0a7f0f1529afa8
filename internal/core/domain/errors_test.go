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
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrExtractionFailed", ErrExtractionFailed},
		{"ErrIndexUnavailable", ErrIndexUnavailable},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrGenerationFailed", ErrGenerationFailed},
		{"ErrNoJSON", ErrNoJSON},
		{"ErrConnectorClosed", ErrConnectorClosed},
		{"ErrRateLimited", ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Wrapping tests sentinel errors survive wrapping
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("call ollama: %w", ErrGenerationFailed)

	assert.True(t, errors.Is(wrapped, ErrGenerationFailed))
	assert.False(t, errors.Is(wrapped, ErrLLMUnavailable))
	assert.Contains(t, wrapped.Error(), "generation failed")
}

// TestErrors_Distinct tests that no two sentinels compare equal
func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnsupportedType, ErrExtractionFailed,
		ErrIndexUnavailable, ErrLLMUnavailable, ErrGenerationFailed, ErrNoJSON,
		ErrConnectorClosed, ErrRateLimited,
	}
	for i := range all {
		for j := range all {
			if i != j {
				assert.False(t, errors.Is(all[i], all[j]), "%v vs %v", all[i], all[j])
			}
		}
	}
}
