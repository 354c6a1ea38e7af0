// Package logger provides structured logging for SkyWalker.
//
// The logger wraps log/slog:
//
//   - logger.go: Logger interface, handler selection, dynamic level
//   - context.go: context propagation of loggers and request IDs
//   - redact.go: masking of credentials before they reach a handler
//
// Passwords, bearer tokens and Authorization headers never reach the
// output in clear text.
package logger
