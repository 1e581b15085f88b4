package user

import "errors"

var (
	// ErrInvalidCredentials covers both unknown accounts and wrong
	// passwords; callers get no hint which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken rejects registration with an already-used address.
	ErrEmailTaken = errors.New("an account with this email already exists")
	// ErrUserNotFound reports a missing account for an authenticated ID.
	ErrUserNotFound = errors.New("user not found")
	// ErrFirebaseDisabled reports that no Firebase credentials are
	// configured, so ID-token sign-in cannot be served.
	ErrFirebaseDisabled = errors.New("firebase sign-in is not configured")
	// ErrStorageDisabled reports that no media storage is configured, so
	// avatar uploads cannot be served.
	ErrStorageDisabled = errors.New("avatar storage is not configured")
)
