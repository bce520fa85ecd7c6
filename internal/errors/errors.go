package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess      = 0   // Indicates successful execution.
	ExitErrorGeneric = 1   // Indicates a generic error.
	ExitErrorConfig  = 2   // Indicates a configuration error.
	ExitErrorReport  = 3   // Indicates the run finished but the report could not be written.
	ExitErrorCanceled = 130 // Indicates the operation was canceled before any sampling began.
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed and that no
// sampling has started.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// option failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the option that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// SamplingError encapsulates an unexpected fatal failure of the sampling
// loop while preserving the original cause. Transient measurement failures
// never surface as a SamplingError; they are absorbed inside the metrics
// layer. This type is reserved for faults that abort the run.
type SamplingError struct {
	// Cause is the underlying error that aborted the run.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e SamplingError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e SamplingError) Unwrap() error { return e.Cause }

// ReportError represents a failure to persist the run report. The collected
// samples were valid; only the final write failed.
type ReportError struct {
	// Path is the destination the report could not be written to.
	Path string
	// Cause is the underlying filesystem error.
	Cause error
}

// Error returns a formatted message describing the write failure.
func (e ReportError) Error() string {
	return fmt.Sprintf("cannot write report to %q: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying filesystem error.
func (e ReportError) Unwrap() error { return e.Cause }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
