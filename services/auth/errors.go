package auth

import "errors"

var (
	// ErrUserNotRegistered means the OTP was valid but no user record exists
	// for the phone. Verification never creates users.
	ErrUserNotRegistered = errors.New("user not registered")

	// ErrInvalidCredentials covers both unknown admin emails and wrong
	// passwords, so the two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingJWTSecret means the token-signing secret is not configured.
	// Issuing an unsigned token is never acceptable, so this fails the request.
	ErrMissingJWTSecret = errors.New("JWT secret is not configured")
)
