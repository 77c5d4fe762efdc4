package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(24)
	b := GenerateRandByteArray(24)
	assert.Len(t, a, 24)
	assert.Len(t, b, 24)
	assert.NotEqual(t, a, b, "two random buffers should differ")
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret1")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 7), buf)

	WipeByteArray(nil)
}

func TestValidationErrorsWrapInvalidInput(t *testing.T) {
	for _, err := range []error{ErrInvalidUsername, ErrInvalidPassword, ErrInvalidRole} {
		assert.True(t, errors.Is(err, ErrInvalidInput), "%v must wrap ErrInvalidInput", err)
	}
}

func TestExpiredCodeIsWrongCode(t *testing.T) {
	assert.ErrorIs(t, ErrOneTimeCodeExpired, ErrWrongOneTimeCode)
	assert.NotErrorIs(t, ErrWrongOneTimeCode, ErrOneTimeCodeExpired)
}
