// Package apperr defines the application error taxonomy. Every failure
// that crosses a service boundary is an *Error carrying a Kind; the HTTP
// layer translates the kind into a status code in exactly one place.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an application failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicateEmail
	KindNotFound
	KindBlocked
	KindForbidden
	KindInvalidCredentials
	KindUnauthenticated
	KindTokenInvalid
	KindTokenExpired
	KindStaleToken
)

// Error is an application failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Err keeps the underlying cause for logs; it is never sent to clients.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an *Error of the given kind.
func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

// Wrap attaches a cause to a new *Error.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Validation(msg string) *Error      { return New(KindValidation, msg) }
func DuplicateEmail(msg string) *Error  { return New(KindDuplicateEmail, msg) }
func NotFound(msg string) *Error        { return New(KindNotFound, msg) }
func Blocked(msg string) *Error         { return New(KindBlocked, msg) }
func Forbidden(msg string) *Error       { return New(KindForbidden, msg) }
func InvalidCredentials() *Error        { return New(KindInvalidCredentials, "invalid credentials") }
func Unauthenticated(msg string) *Error { return New(KindUnauthenticated, msg) }
func TokenInvalid(msg string) *Error    { return New(KindTokenInvalid, msg) }
func TokenExpired() *Error              { return New(KindTokenExpired, "token has expired") }
func StaleToken() *Error                { return New(KindStaleToken, "token issued before last password change") }

// Internal wraps an unexpected failure. The client only ever sees the
// generic message; the cause stays in logs.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "something went wrong", Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// StatusOf maps err to its HTTP status code.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicateEmail:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindBlocked, KindForbidden:
		return http.StatusForbidden
	case KindInvalidCredentials, KindUnauthenticated, KindTokenInvalid, KindTokenExpired, KindStaleToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the client-facing message for err. Internal causes
// are hidden behind the generic message.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "something went wrong"
}
