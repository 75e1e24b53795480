package service

import "errors"

var (
	// ErrInvalidCredentials is returned when email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrValidation is returned for malformed input (empty title,
	// unknown priority, and so on).
	ErrValidation = errors.New("invalid input")
)
