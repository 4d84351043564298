// Package fault defines the error taxonomy shared by every component.
//
// Components never panic across their API boundary and never reduce a
// failure to a bare string: every error carries a Kind so callers can
// branch programmatically (retry, re-prompt, surface a modal) without
// matching on message text.
package fault

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	// KindNotFound signals a lookup miss (unknown email, missing row).
	KindNotFound
	// KindInvalidCredentials signals a password or token mismatch.
	KindInvalidCredentials
	// KindValidation signals a field-constraint violation.
	KindValidation
	// KindConflict signals a taken scheduling slot, an illegal status
	// transition, or a uniqueness violation.
	KindConflict
	// KindPersistence signals a failure in the underlying store.
	KindPersistence
	// KindUnauthorized signals a missing session or permission.
	KindUnauthorized
	// KindThrottled signals that the login attempt budget is exhausted.
	KindThrottled
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	case KindUnauthorized:
		return "unauthorized"
	case KindThrottled:
		return "throttled"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by the session manager, the
// scheduling guard and the controllers.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes two faults match when their kinds match, so tests and callers
// can write errors.Is(err, &Error{Kind: KindConflict}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying cause. If the cause is
// already a fault, its kind wins so classification survives layering.
func Wrap(kind Kind, msg string, err error) *Error {
	if err == nil {
		return &Error{Kind: kind, Msg: msg}
	}
	var f *Error
	if errors.As(err, &f) {
		kind = f.Kind
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of err, or KindUnknown for nil and foreign errors.
func KindOf(err error) Kind {
	var f *Error
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
