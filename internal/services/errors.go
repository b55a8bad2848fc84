package services

import "errors"

// Errors returned by the service layer. Handlers map these to HTTP statuses.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrInvalidToken covers malformed, tampered and expired tokens alike.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserNotFound is returned when a token is valid but its subject no
	// longer exists, or when a targeted user record is missing.
	ErrUserNotFound = errors.New("user not found")

	// ErrItemNotFound is returned when a targeted item record is missing.
	ErrItemNotFound = errors.New("item not found")

	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")
)
