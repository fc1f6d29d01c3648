package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind tags every error the core surfaces. Callers switch on the
// kind instead of inspecting messages.
type ErrorKind string

const (
	KindValidation  ErrorKind = "validation"
	KindConflict    ErrorKind = "conflict"
	KindNotFound    ErrorKind = "not_found"
	KindPersistence ErrorKind = "persistence"
)

type Error struct {
	Kind    ErrorKind
	Message string
	// MinimumBookingTime is set on lead-time validation errors so the
	// client can show the earliest bookable instant.
	MinimumBookingTime *time.Time
	Err                error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NewLeadTimeError(msg string, minimum time.Time) *Error {
	return &Error{Kind: KindValidation, Message: msg, MinimumBookingTime: &minimum}
}

func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewPersistenceError(msg string, err error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, Err: err}
}

// KindOf reports the kind of err, or KindPersistence for anything that
// is not a *domain.Error (unexpected storage failures stay opaque).
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindPersistence
}
