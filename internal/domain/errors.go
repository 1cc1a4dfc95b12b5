package domain

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

// AuthError reports a failed client-credentials token exchange.
type AuthError struct {
	Err error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIStatusError reports a non-success status from the firewall management API.
// Reason carries the remote-supplied status text.
type APIStatusError struct {
	Method     string
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *APIStatusError) Error() string {
	return fmt.Sprintf("firewall API %s returned %d: %s", e.Method, e.StatusCode, e.Reason)
}
