// Package apperrors defines the application error types and their mapping
// to process exit codes.
//
// Error Wrapping Guidelines:
// Errors are wrapped with fmt.Errorf and %w, and every wrapper type
// implements Unwrap so errors.Is and errors.As see the original cause.
package apperrors
