package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewAppError("PERSISTENCE_FAILURE", "cannot write ledger", cause)

	assert.Equal(t, "PERSISTENCE_FAILURE: cannot write ledger: disk full", err.Error())
	assert.True(t, errors.Is(err, cause))
}

func TestAppErrorWithoutCause(t *testing.T) {
	err := NewAppError("EXPORT_FAILURE", "cannot build workbook", nil)
	assert.Equal(t, "EXPORT_FAILURE: cannot build workbook", err.Error())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "context"))

	wrapped := WrapError(ErrBusy, "layout")
	assert.True(t, errors.Is(wrapped, ErrBusy))
	assert.Equal(t, "layout: a job is already in flight", wrapped.Error())
}
