package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated indicates the session carries no authenticated identity
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUpstreamUnavailable indicates the upstream API could not be reached
	// or returned a malformed response
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// UpstreamError creates an upstream unavailability error with context
func UpstreamError(operation string, cause error) error {
	return fmt.Errorf("%s: %v: %w", operation, cause, ErrUpstreamUnavailable)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
