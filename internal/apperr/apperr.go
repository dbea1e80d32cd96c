// Package apperr defines the closed set of error kinds surfaced by the
// service layer. The HTTP boundary selects a response status from the
// kind alone; messages are safe to expose and carry no internal detail.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindUnknown marks errors that did not originate from this package.
	KindUnknown Kind = iota

	// KindUnauthorized: missing, malformed, invalid, expired, or
	// wrong-type credential.
	KindUnauthorized

	// KindForbidden: authenticated caller lacks tenant or ownership
	// rights over an existing target.
	KindForbidden

	// KindNotFound: the target resource does not exist. Always checked
	// before tenancy and ownership.
	KindNotFound

	// KindValidation: malformed request input.
	KindValidation

	// KindStorage: the data store failed; fatal for the request, never
	// retried.
	KindStorage
)

// Error is a structured application error. Resource is set for
// KindNotFound so callers can report which resource was missing without
// string-matching the message.
type Error struct {
	Kind     Kind
	Resource string
	Message  string
	wrapped  error
}

func (e *Error) Error() string {
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.wrapped)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.wrapped }

// Unauthorized returns a credential failure with the given message.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden returns the uniform tenant/ownership denial.
func Forbidden() *Error {
	return &Error{Kind: KindForbidden, Message: "You do not have permission to access this resource"}
}

// NotFound returns a missing-resource error for the named resource kind
// ("member", "income", "expense").
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Resource: resource, Message: resource + " not found"}
}

// Validation returns an input validation failure with the given message.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Storage wraps a data-store failure. The underlying error is preserved
// for logging but the outward message stays generic.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: "storage failure", wrapped: err}
}

// KindOf extracts the kind of err, or KindUnknown if err was not built
// by this package.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
