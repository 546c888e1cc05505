package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic or calculation failure.
	ExitErrorTimeout  = 2   // The --timeout limit was reached.
	ExitErrorMismatch = 3   // Calculators disagreed on the digits of π.
	ExitErrorConfig   = 4   // Invalid flags, environment or config file.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ConfigError is a user configuration error, such as an invalid flag value
// or an unreadable config file.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while computing π, preserving
// the original cause for errors.Is and errors.As.
type CalculationError struct {
	// Algorithm is the calculator that failed. It may be empty.
	Algorithm string
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause message, prefixed with the algorithm when known.
func (e CalculationError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return e.Algorithm + ": " + e.Cause.Error()
}

// Unwrap returns the cause.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError reports that an operation exceeded its time limit. It
// matches context.DeadlineExceeded with errors.Is.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the configured time limit.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// Unwrap returns context.DeadlineExceeded.
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError identifies an input field that failed validation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports calculators that returned different digits for
// the same request.
type MismatchError struct {
	// Algorithms lists the calculators whose output differed from the
	// reference.
	Algorithms []string
}

// Error returns a formatted message naming the disagreeing calculators.
func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch between calculators: %s", strings.Join(e.Algorithms, ", "))
}

// WrapError wraps err with a formatted context message using %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError reports whether err is a context cancellation or deadline
// error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		configErr     ConfigError
		validationErr ValidationError
		mismatchErr   MismatchError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	case errors.As(err, &mismatchErr):
		return ExitErrorMismatch
	default:
		return ExitErrorGeneric
	}
}
