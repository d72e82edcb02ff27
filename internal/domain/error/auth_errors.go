// Package error defines domain-specific errors for the farm finance service.
package error

import "errors"

// Authentication errors raised while verifying access tokens.
var (
	// ErrInvalidToken is returned when a token cannot be verified.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// AuthErrorCode defines error codes for authentication errors.
type AuthErrorCode string

const (
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)
