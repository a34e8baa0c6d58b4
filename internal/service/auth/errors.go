// Package auth provides JWT token issuance/validation and password
// hashing for the HTTP surface.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a token is malformed or its
	// signature does not verify.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidCredentials is returned when an email/password pair does
	// not match a registered user.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
