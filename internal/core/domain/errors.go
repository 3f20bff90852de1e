package domain

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates gateway failures so the entry point can pick a
// status code without inspecting error strings.
type ErrorKind int

const (
	// KindSchema marks a malformed request shape (client error).
	KindSchema ErrorKind = iota + 1
	// KindAuthorization marks an unknown or revoked API key.
	KindAuthorization
	// KindPolicy marks a record name outside the caller's allowed pattern.
	KindPolicy
	// KindConflict marks a CREATE on a name with an active record.
	KindConflict
	// KindNotFound marks a DELETE on a name with no record.
	KindNotFound
	// KindAlreadyDeleted marks a DELETE on an already soft-deleted record.
	KindAlreadyDeleted
	// KindProvider marks a rejection by the external DNS provider.
	KindProvider
	// KindStore marks an unavailable or failing record store.
	KindStore
)

func (k ErrorKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindAuthorization:
		return "authorization"
	case KindPolicy:
		return "policy"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAlreadyDeleted:
		return "already_deleted"
	case KindProvider:
		return "provider"
	case KindStore:
		return "store"
	}
	return "unknown"
}

// Error is the typed failure carried from the orchestrator to the entry
// point. Message is the human-readable text surfaced to callers; Cause, when
// set, is the underlying store or provider error.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError builds a typed error with a fixed message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf builds a typed error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a kind and message to an underlying failure.
func WrapError(kind ErrorKind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the kind from err, or 0 when err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
