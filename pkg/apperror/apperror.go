// Package apperror defines the error taxonomy shared by usecases and handlers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation             Kind = "VALIDATION_ERROR"
	KindUnauthenticated        Kind = "UNAUTHENTICATED"
	KindTokenExpired           Kind = "TOKEN_EXPIRED"
	KindUnauthorized           Kind = "UNAUTHORIZED"
	KindForbidden              Kind = "FORBIDDEN"
	KindNotFound               Kind = "NOT_FOUND"
	KindConflict               Kind = "CONFLICT"
	KindInvalidStateTransition Kind = "INVALID_STATE_TRANSITION"
	KindTooEarly               Kind = "TOO_EARLY"
	KindInvalidOrExpiredToken  Kind = "INVALID_OR_EXPIRED_TOKEN"
	KindInternal               Kind = "INTERNAL_ERROR"
)

// Error is a classified failure. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) HTTPStatus() int {
	return StatusOf(e.Kind)
}

func StatusOf(kind Kind) int {
	switch kind {
	case KindValidation, KindInvalidOrExpiredToken:
		return http.StatusBadRequest
	case KindUnauthenticated, KindTokenExpired:
		return http.StatusUnauthorized
	case KindUnauthorized, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidStateTransition, KindTooEarly:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Sentinels for errors.Is checks.
var (
	ErrValidation             = &Error{Kind: KindValidation}
	ErrUnauthenticated        = &Error{Kind: KindUnauthenticated}
	ErrTokenExpired           = &Error{Kind: KindTokenExpired}
	ErrUnauthorized           = &Error{Kind: KindUnauthorized}
	ErrForbidden              = &Error{Kind: KindForbidden}
	ErrNotFound               = &Error{Kind: KindNotFound}
	ErrConflict               = &Error{Kind: KindConflict}
	ErrInvalidStateTransition = &Error{Kind: KindInvalidStateTransition}
	ErrTooEarly               = &Error{Kind: KindTooEarly}
	ErrInvalidOrExpiredToken  = &Error{Kind: KindInvalidOrExpiredToken}
	ErrInternal               = &Error{Kind: KindInternal}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(KindUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(KindForbidden, format, args...)
}

func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

func InvalidTransition(format string, args ...any) *Error {
	return New(KindInvalidStateTransition, format, args...)
}

func TooEarly(format string, args ...any) *Error {
	return New(KindTooEarly, format, args...)
}

func InvalidOrExpiredToken() *Error {
	return New(KindInvalidOrExpiredToken, "invalid or expired token")
}

// Internal wraps an infrastructure failure. The cause is kept for logs only.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// From classifies any error; unknown errors become KindInternal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("internal server error", err)
}
