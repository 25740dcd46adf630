package otp

import "errors"

// Terminal verification outcomes. Callers map these to HTTP statuses.
var (
	// ErrNotFound means no active (unconsumed) code exists for the phone,
	// including the case where a concurrent verification consumed it first.
	ErrNotFound = errors.New("otp not found")

	// ErrExpired means the newest code's validity window has passed. The
	// record is consumed as a side effect so it cannot be retried.
	ErrExpired = errors.New("otp expired")

	// ErrInvalidCode means the submitted code does not match. The record is
	// left unconsumed so the correct code can still be submitted before expiry.
	ErrInvalidCode = errors.New("invalid otp")
)
