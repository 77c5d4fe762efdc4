// Package common defines the error taxonomy shared by every layer of
// authgate. Callers should use errors.Is to match these values; the
// finer-grained validation errors wrap ErrInvalidInput so a caller can branch
// on either level.
package common

import (
	"errors"
	"fmt"
)

var (
	// Input validation.
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidUsername = fmt.Errorf("%w: username", ErrInvalidInput)
	ErrInvalidPassword = fmt.Errorf("%w: password", ErrInvalidInput)
	ErrInvalidRole     = fmt.Errorf("%w: role", ErrInvalidInput)

	// Registration.
	ErrDuplicateUsername = errors.New("user already exists")

	// Authentication.
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("wrong password")
	ErrWrongOneTimeCode   = errors.New("wrong one-time code")
	ErrOneTimeCodeExpired = fmt.Errorf("%w: expired", ErrWrongOneTimeCode)
	ErrAlreadyLoggedIn    = errors.New("already logged in")

	// Authorization.
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrInsufficientRole = errors.New("insufficient role")

	// Persistence.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
