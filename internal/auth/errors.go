package auth

import "errors"

// Kind classifies the expected, recoverable failure modes of the auth
// subsystem. The transport layer translates kinds into protocol error codes;
// anything without a Kind is an unexpected failure and must surface as a
// 5xx-class error, never as one of these.
type Kind string

const (
	KindBadUserInput    Kind = "BAD_USER_INPUT"
	KindConflict        Kind = "CONFLICT"
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
)

// Error is an expected rejection carrying a stable machine-readable kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func badInput(msg string) *Error {
	return &Error{Kind: KindBadUserInput, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// KindOf extracts the rejection kind from err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// ErrInvalidToken is the uniform rejection for any bearer token that fails
// verification: bad signature, expired, or malformed claims. Callers cannot
// distinguish the cause.
var ErrInvalidToken = &Error{Kind: KindUnauthenticated, Message: "invalid or expired token"}
