// Package errors provides the classified error type used across kbits.
//
// A ClassifiedError carries a category (settings, generator, filesystem, ...),
// a severity, and free-form context. Categories drive the CLI exit code, so
// callers classify an error once, where the failure is understood, and let
// it travel up unchanged.
//
// Example usage:
//
//	err := errors.GeneratorError("generator exited with failure").
//		WithContext("command", "pelican").
//		WithCause(runErr).
//		Build()
package errors
