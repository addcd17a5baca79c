// Package errors provides error handling for kbsync.
//
// It re-exports github.com/cockroachdb/errors so the rest of the module
// gets stack traces, wrapping, and errors.Is/As through one import, and
// defines the sentinel errors the synchronization protocol distinguishes.
//
// Usage:
//
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New         = crdb.New
	Newf        = crdb.Newf
	Wrap        = crdb.Wrap
	Wrapf       = crdb.Wrapf
	WithStack   = crdb.WithStack
	WithMessage = crdb.WithMessage
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
)

// Error inspection
var (
	Is     = crdb.Is
	IsAny  = crdb.IsAny
	As     = crdb.As
	Unwrap = crdb.Unwrap
)

// Sentinel errors for the synchronization protocol. Use with errors.Is();
// wrap with errors.Wrap() to add context while preserving the type.
var (
	// ErrServiceUnavailable indicates the reasoning service could not be
	// reached or refused the connection.
	ErrServiceUnavailable = New("reasoning service unavailable")

	// ErrSessionClosed indicates the client session ended while a request
	// was still waiting for its response.
	ErrSessionClosed = New("session closed")

	// ErrRemoteFailure indicates the remote call completed its machinery
	// but the reasoning service reported a processing error.
	ErrRemoteFailure = New("remote execution failure")

	// ErrUnknownKb indicates the reasoning service holds no state for the
	// requested knowledge base.
	ErrUnknownKb = New("unknown knowledge base")
)

// IsServiceUnavailable checks if an error is or wraps ErrServiceUnavailable.
func IsServiceUnavailable(err error) bool {
	return err != nil && Is(err, ErrServiceUnavailable)
}

// IsSessionClosed checks if an error is or wraps ErrSessionClosed.
func IsSessionClosed(err error) bool {
	return err != nil && Is(err, ErrSessionClosed)
}

// IsRemoteFailure checks if an error is or wraps ErrRemoteFailure.
func IsRemoteFailure(err error) bool {
	return err != nil && Is(err, ErrRemoteFailure)
}

// NewRemoteFailure wraps the message a reasoning service reported in its
// error response, preserving ErrRemoteFailure for errors.Is checks.
func NewRemoteFailure(format string, args ...interface{}) error {
	return Wrap(ErrRemoteFailure, Newf(format, args...).Error())
}
