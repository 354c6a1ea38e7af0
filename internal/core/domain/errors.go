// Package domain defines the core domain models for SkyWalker.
package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failure categories delivered to callers.
type ErrorKind int

const (
	// Unknown covers failures without response metadata or that match no other kind.
	Unknown ErrorKind = iota

	// NoConnection indicates the connection to the server could not be established.
	NoConnection

	// InvalidCredentials indicates missing, invalid or expired credentials.
	InvalidCredentials

	// InvalidResponseBody indicates a body was received but did not match the expected schema.
	InvalidResponseBody

	// Timeout indicates a deadline elapsed before a response arrived.
	Timeout
)

// String returns the wire-stable name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case NoConnection:
		return "NO_CONNECTION"
	case InvalidCredentials:
		return "INVALID_CREDENTIALS"
	case InvalidResponseBody:
		return "INVALID_RESPONSE_BODY"
	case Timeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Error is a classified request failure.
type Error struct {
	Kind  ErrorKind // Classified kind
	Op    string    // Facade operation (e.g., "tags.list")
	Cause error     // Underlying transport, status or decode error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Op)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewError creates a new Error of the given kind.
func NewError(kind ErrorKind, op string, cause error) *Error {
	return &Error{
		Kind:  kind,
		Op:    op,
		Cause: cause,
	}
}

// KindOf extracts the ErrorKind of err. Errors that are not *Error,
// including nil, report Unknown.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return Unknown
}

// Sentinels for errors.Is comparisons against a kind.
var (
	ErrNoConnection        = &Error{Kind: NoConnection}
	ErrInvalidCredentials  = &Error{Kind: InvalidCredentials}
	ErrInvalidResponseBody = &Error{Kind: InvalidResponseBody}
	ErrTimeout             = &Error{Kind: Timeout}
)

// ErrNotLoggedIn is the panic value raised when an authenticated operation
// is issued without a token and an active center.
var ErrNotLoggedIn = errors.New("domain: operation requires a logged in session with an active center")
