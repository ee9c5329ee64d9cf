package store

import "errors"

// Sentinel errors returned by store operations. Every failure is also
// surfaced to the user as a toast; callers only need these to pick a
// transport-level response.
var (
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrBanned             = errors.New("account banned")
	ErrTaken              = errors.New("username or email already taken")
	ErrEmptyText          = errors.New("text must not be empty")
)
