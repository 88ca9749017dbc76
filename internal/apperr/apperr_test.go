package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/dompetku/internal/apperr"
)

func TestError_Is(t *testing.T) {
	errMissing := apperr.NotFound("budget not found")
	wrapped := fmt.Errorf("getting budget: %w", errMissing)

	assert.True(t, errors.Is(wrapped, errMissing))
	assert.True(t, errors.Is(wrapped, apperr.ErrNotFound))
	assert.False(t, errors.Is(wrapped, apperr.ErrValidation))
	assert.Equal(t, "getting budget: budget not found", wrapped.Error())
}

func TestError_DistinctSentinels(t *testing.T) {
	a := apperr.Validation("user id is required")
	b := apperr.Validation("user id is required")

	assert.False(t, errors.Is(a, b))
	assert.True(t, errors.Is(b, apperr.ErrValidation))
}
