package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// Service-level errors
var (
	// ErrInvalidCredentials covers both the unknown-username and the
	// wrong-password case. One message for both so callers cannot
	// enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
