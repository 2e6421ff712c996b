// Package errors provides the typed errors shared across the meeple pipeline.
package errors

import "errors"

// TransientError represents a temporary failure talking to the AI service
// (network error, rate limit, 5xx). It is the only error class the backfill
// orchestrator retries on.
type TransientError struct {
	Message string
	Err     error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// NewTransientError creates a TransientError with the given message.
func NewTransientError(message string) *TransientError {
	return &TransientError{Message: message}
}

// WrapTransient wraps an underlying error as a TransientError.
func WrapTransient(message string, err error) *TransientError {
	return &TransientError{Message: message, Err: err}
}

// IsTransient reports whether err is a TransientError (even when wrapped).
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
