package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind string

const (
	KindUnauthenticated Kind = "unauthenticated"
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindPersistence     Kind = "persistence"
)

// GenericMessage is what callers see for persistence failures.
const GenericMessage = "Something went wrong!"

// Sentinel errors, one per kind, usable with errors.Is.
var (
	ErrUnauthenticated = errors.New("user is not authenticated")
	ErrValidation      = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrPersistence     = errors.New("persistence failure")
)

// Error carries a kind, a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error returns the user-facing message. Persistence causes are never
// included; unwrap the error to log the cause.
func (e *Error) Error() string {
	if e.Kind == KindPersistence {
		return e.Message
	}
	if e.Err != nil && !isSentinel(e.Err) {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return sentinelFor(e.Kind) == target
}

func Unauthenticated() error {
	return &Error{Kind: KindUnauthenticated, Message: "User is not authenticated!", Err: ErrUnauthenticated}
}

func Validation(message string, err error) error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message, Err: ErrNotFound}
}

// Persistence wraps a gateway failure. A nil err returns nil.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindPersistence, Message: GenericMessage, Err: err}
}

// KindOf returns the kind of err, or KindPersistence for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// MessageOf returns the user-facing message for err.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return GenericMessage
}

func sentinelFor(k Kind) error {
	switch k {
	case KindUnauthenticated:
		return ErrUnauthenticated
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	default:
		return ErrPersistence
	}
}

func isSentinel(err error) bool {
	switch err {
	case ErrUnauthenticated, ErrValidation, ErrNotFound, ErrPersistence:
		return true
	}
	return false
}
