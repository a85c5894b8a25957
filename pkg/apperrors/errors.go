// Package apperrors defines the sentinel errors shared across the client.
//
// Every failure the library itself can produce wraps one of these values, so
// callers can branch with errors.Is regardless of the message context added
// at the failure site.
package apperrors

import "errors"

var (
	// ErrNotFound indicates a name did not resolve to any entity in the
	// cube tree. It is a programming or configuration error at the call
	// site and is never retried or defaulted.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuery indicates a query is structurally incomplete or
	// internally inconsistent and would surely be rejected by the server.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrNotSupported indicates a recognized endpoint family or response
	// format that the current dialect does not implement.
	ErrNotSupported = errors.New("not supported")

	// ErrUpstream indicates a well-formed server response whose payload
	// or status signals a server-side failure.
	ErrUpstream = errors.New("upstream error")
)
