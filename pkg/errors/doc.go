// Package errors provides structured error types for winspect components.
//
// StructuredError pairs a stable ErrorCode with a human-readable message and
// an optional cause, enabling callers (most notably the HTTP layer) to map
// failures to responses without string matching.
package errors
