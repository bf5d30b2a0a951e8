// Package apperr defines the request-scoped error taxonomy raised by
// business code. Only the HTTP boundary translates these into response
// envelopes; business code never formats a response itself.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionInvalid covers every token-validation failure: missing,
	// unknown, malformed, or expired. Callers are deliberately not told
	// which.
	ErrSessionInvalid = errors.New("session invalid or expired")

	// ErrStore marks a persistence failure. The underlying cause is kept
	// in the chain for logging but must never reach a client.
	ErrStore = errors.New("storage failure")
)

// ValidationError carries one or more user-safe field validation messages,
// in the order they were raised.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// Validation builds a ValidationError from the given messages.
func Validation(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

// BusinessError is a domain-level rejection with a single message authored
// to be safe to show to a user verbatim.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// Business builds a BusinessError with the given user-safe message.
func Business(message string) *BusinessError {
	return &BusinessError{Message: message}
}

// Store wraps a low-level persistence error so that errors.Is(err, ErrStore)
// matches while the cause stays in the chain.
func Store(err error) error {
	return fmt.Errorf("%w: %w", ErrStore, err)
}
