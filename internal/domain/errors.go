package domain

import "errors"

var (
	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords so that login failures are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts is returned when the failed-login counter for a
	// username is saturated.
	ErrTooManyAttempts = errors.New("too many failed login attempts")

	// ErrUnknownRole is returned by ParseRole for unrecognized role names.
	ErrUnknownRole = errors.New("unknown role")
)
