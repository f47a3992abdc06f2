package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrNotFound, "notice not found"))

	appErr := FromError(wrapped)

	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "notice not found", appErr.Message)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(errors.New("boom"))

	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Nil(t, FromError(nil))
}

func TestIsMatchesByCode(t *testing.T) {
	err := StoreUnavailable(errors.New("dial tcp"), "failed to list notices")

	assert.True(t, errors.Is(err, ErrStoreUnavailable))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.True(t, err.Retryable())
	assert.False(t, ErrValidation.Retryable())
	assert.Contains(t, err.Error(), "dial tcp")
}
