package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when an insert collides with an
	// existing user's email.
	ErrDuplicateEmail = errors.New("email already in use")
)
