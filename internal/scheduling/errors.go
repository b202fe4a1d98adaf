package scheduling

import (
	"errors"
	"fmt"

	"github.com/shift-planner/backend/internal/domain"
)

// ErrorKind classifies why a candidate interval was rejected. Every kind is
// a normal, reportable outcome of one request; only StoreUnavailable is
// worth retrying, and retrying is the caller's decision.
type ErrorKind string

const (
	KindInvalidIntervalInput          ErrorKind = "INVALID_INTERVAL_INPUT"
	KindAvailabilityTooShort          ErrorKind = "AVAILABILITY_TOO_SHORT"
	KindAvailabilityOverlap           ErrorKind = "AVAILABILITY_OVERLAP"
	KindShiftOverlap                  ErrorKind = "SHIFT_OVERLAP"
	KindNoAvailability                ErrorKind = "NO_AVAILABILITY"
	KindOutsideAvailability           ErrorKind = "OUTSIDE_AVAILABILITY"
	KindAvailabilityHasDependentShift ErrorKind = "AVAILABILITY_HAS_DEPENDENT_SHIFT"
	KindStoreUnavailable              ErrorKind = "STORE_UNAVAILABLE"
)

// Error is a structured rejection. Conflict is set for the overlap kinds and
// names the existing record the candidate collided with.
type Error struct {
	Kind     ErrorKind
	Message  string
	Conflict *domain.Interval
	cause    error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func conflictError(kind ErrorKind, conflict domain.Interval, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Conflict: &conflict}
}

// storeError wraps a Store failure as a transient StoreUnavailable. A Store
// may itself return an *Error (e.g. when a database-level overlap constraint
// fires as the last-resort backstop); that classification passes through.
func storeError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindStoreUnavailable, Message: "scheduling store unavailable", cause: err}
}

// KindOf returns the classification of err, or an empty kind when err did
// not come out of a validator.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
