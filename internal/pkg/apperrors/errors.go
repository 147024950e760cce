package apperrors

import "errors"

// Standard application errors
var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when provided input fails validation.
	ErrInvalidInput = errors.New("invalid input provided")

	// ErrConfigLoad is returned when the target registry cannot be loaded.
	ErrConfigLoad = errors.New("failed to load configuration")

	// ErrExternalServiceFailure is returned when an interaction with an external service fails.
	ErrExternalServiceFailure = errors.New("external service interaction failed")

	// ErrTimeout is returned when an operation times out.
	ErrTimeout = errors.New("operation timed out")

	// ErrMalformedResponse is returned when a remote endpoint answers with an unexpected payload.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInternal is returned for unexpected internal system errors.
	ErrInternal = errors.New("internal system error")
)
