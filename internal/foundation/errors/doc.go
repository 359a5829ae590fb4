// Package errors provides the classified error primitives used across mdcollect.
//
// Errors carry a category (config, filesystem, protocol, ...) and a severity so
// the CLI can pick an exit code and a message without string matching.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, filesystem, protocol, ...)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit code and message selection for the command line
//
// Example usage:
//
//	err := errors.ConfigError("marker could not be compiled").
//		WithContext("marker", token).
//		WithCause(reErr).
//		Build()
package errors
