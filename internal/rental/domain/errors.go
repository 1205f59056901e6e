package domain

import (
	"errors"
	"fmt"
)

// Every engine failure unwraps to exactly one of these.
var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidState = errors.New("invalid_state")
	ErrConflict     = errors.New("conflict")
)

// Input errors rejected before any lookup.
var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidDistance   = errors.New("invalid_distance")
	ErrInvalidRentalType = errors.New("invalid_rental_type")
)

type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Reason)
}

func (e *Error) Unwrap() error { return e.Kind }

// NotFound names the missing entity, e.g. "scooter".
func NotFound(entity string) *Error {
	return &Error{Kind: ErrNotFound, Reason: entity + " not found"}
}

func InvalidState(reason string) *Error {
	return &Error{Kind: ErrInvalidState, Reason: reason}
}

func Conflict(reason string) *Error {
	return &Error{Kind: ErrConflict, Reason: reason}
}

// KindOf names the class of err, or "" when err is outside the taxonomy.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return ErrNotFound.Error()
	case errors.Is(err, ErrInvalidState):
		return ErrInvalidState.Error()
	case errors.Is(err, ErrConflict):
		return ErrConflict.Error()
	default:
		return ""
	}
}
