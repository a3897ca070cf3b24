package herego

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by Error values so callers can classify failures
// with errors.Is regardless of which service produced them.
var (
	// ErrUnauthorized indicates the service rejected the credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidRequest indicates the service rejected the request parameters.
	ErrInvalidRequest = errors.New("invalid request")
)

// Error is an API-level failure: the response body parsed as JSON but carried
// an error payload instead of a success envelope.
type Error struct {
	// Operation is the client operation that failed.
	Operation string

	// Code is the server-provided error code or subtype, when present.
	Code string

	// Message is the human-readable description from the payload, or a
	// synthesized one naming the operation when the payload carries none.
	Message string

	// Err is the wrapped sentinel, when the code maps to one.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Operation, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped sentinel error.
func (e *Error) Unwrap() error {
	return e.Err
}

// TransportError reports that the HTTP call itself failed (connection,
// timeout). It is never translated into an Error; the underlying cause is
// preserved for errors.Is checks such as context.DeadlineExceeded.
type TransportError struct {
	// Operation is the client operation that failed.
	Operation string

	// Err is the underlying transport failure.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// ParseError reports a response body that was not valid JSON.
type ParseError struct {
	// Operation is the client operation that failed.
	Operation string

	// Err is the underlying decode failure.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: decoding response: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying decode failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}
