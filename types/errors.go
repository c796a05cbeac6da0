package types

import (
	"errors"
	"fmt"
)

const (
	ErrInvalidInput    = "Invalid input"
	ErrDatabaseError   = "Database error"
	ErrUnauthorized    = "Unauthorized access"
	ErrInternalError   = "internal server error"
	ErrInvalidPersonID = "Invalid person ID"
)

// ErrorKind classifies business-rule failures so the HTTP layer can map them
// to a status code without inspecting messages.
type ErrorKind string

const (
	KindPermissionDenied ErrorKind = "PermissionDenied"
	KindInsufficientDays ErrorKind = "InsufficientDays"
	KindEntityNotFound   ErrorKind = "EntityNotFound"
	KindInvalidBirthDate ErrorKind = "InvalidBirthDate"
	KindValidationFailed ErrorKind = "ValidationFailed"
)

// Sentinels for errors.Is. A *Error matches the sentinel of the same kind.
var (
	ErrPermissionDenied = &Error{Kind: KindPermissionDenied}
	ErrInsufficientDays = &Error{Kind: KindInsufficientDays}
	ErrEntityNotFound   = &Error{Kind: KindEntityNotFound}
	ErrInvalidBirthDate = &Error{Kind: KindInvalidBirthDate}
	ErrValidationFailed = &Error{Kind: KindValidationFailed}
)

// Error is the single business error type. Reason carries the rejection
// detail for PermissionDenied; it is empty for the other kinds.
type Error struct {
	Kind    ErrorKind
	Message string
	Reason  string
	Fields  []FieldError
}

// FieldError describes one failed request field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func PermissionDenied(message, reason string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: message, Reason: reason}
}

func InsufficientDays(message string) *Error {
	return &Error{Kind: KindInsufficientDays, Message: message}
}

func EntityNotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindEntityNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidBirthDate(message string) *Error {
	return &Error{Kind: KindInvalidBirthDate, Message: message}
}

func ValidationFailed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidationFailed, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a business error, or "" for anything else.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	switch KindOf(err) {
	case KindPermissionDenied, KindInsufficientDays, KindInvalidBirthDate, KindValidationFailed:
		return true
	}
	return false
}

// Prefix prepends context to the message of a business error and keeps its
// kind. Other errors are wrapped with fmt.Errorf.
func Prefix(err error, format string, args ...interface{}) error {
	prefix := fmt.Sprintf(format, args...)
	var e *Error
	if errors.As(err, &e) {
		prefixed := *e
		prefixed.Message = prefix + ": " + e.Message
		return &prefixed
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
