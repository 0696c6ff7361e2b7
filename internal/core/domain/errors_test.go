package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrNotImplemented,
		ErrUnsupportedFormat,
		ErrEmptyCategory,
		ErrExtractorUnavailable,
		ErrExtractionFailed,
		ErrRateLimited,
	}

	for i := range all {
		for j := range all {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(all[i], all[j]), "%v should not match %v", all[i], all[j])
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading receipt r-1: %w", ErrNotFound)

	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "not found")
}
