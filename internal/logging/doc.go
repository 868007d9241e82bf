// Package logging provides structured logging utilities for the didamcp application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Logger adapter interface for flexibility
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "dida.listProjects")
//	logger.Info("listing projects",
//	    logging.Status("success"))
//
// # Security Considerations
//
// Access tokens are never logged directly; use SanitizeToken when a token
// must be mentioned in a log line.
package logging
