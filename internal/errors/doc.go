// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// validation, task failure) and for carrying the underlying cause.
//
// Error Wrapping Guidelines:
// Callers add context with WrapError, which uses fmt.Errorf with %w.
// Error types that carry a cause implement Unwrap() to support errors.Is() and errors.As().
package apperrors
