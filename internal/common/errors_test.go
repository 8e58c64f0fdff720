package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	err := NewAppError("DB_ERROR", "save failed", ErrDatabase)
	assert.Equal(t, "DB_ERROR: save failed: database error", err.Error())
	assert.ErrorIs(t, err, ErrDatabase)

	bare := NewAppError("CONFIG_ERROR", "bad driver", nil)
	assert.Equal(t, "CONFIG_ERROR: bad driver", bare.Error())
}

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))

	wrapped := WrapError(ErrNotFound, "lookup contract")
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, "lookup contract: resource not found", wrapped.Error())
}

func TestWrapSourceError(t *testing.T) {
	assert.NoError(t, WrapSourceError(nil, "doc.txt"))

	err := WrapSourceError(ErrUnsupportedFormat, "scan.pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "scan.pdf")

	var target *AppError
	assert.False(t, errors.As(err, &target))
}
