package service

import (
	"errors"
	"fmt"
)

// Sentinel errors the API layer matches on with errors.Is / errors.As.
var (
	ErrOverlapDetected     = errors.New("booking dates conflict with an existing reservation")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrRoomUnavailable     = errors.New("room does not exist or is not enabled")
)

// ValidationKind identifies which date rule a request broke.
type ValidationKind string

const (
	InvalidRange           ValidationKind = "invalid_range"
	StartTooSoon           ValidationKind = "start_too_soon"
	TooManyConsecutiveDays ValidationKind = "too_many_consecutive_days"
	TooFarInAdvance        ValidationKind = "too_far_in_advance"
)

// ValidationError reports a business-rule violation on the requested dates.
// Limit carries the configured bound for the kinds that have one.
type ValidationError struct {
	Kind  ValidationKind
	Limit int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case InvalidRange:
		return "start time is after end time"
	case StartTooSoon:
		return "booking must start no earlier than tomorrow"
	case TooManyConsecutiveDays:
		return fmt.Sprintf("booking exceeds the maximum of %d consecutive days", e.Limit)
	case TooFarInAdvance:
		return fmt.Sprintf("booking starts more than %d days in advance", e.Limit)
	}
	return "invalid booking dates"
}

// NotFoundError wraps a not-found sentinel together with the offending id.
type NotFoundError struct {
	ID  string
	Err error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// TransientError marks failures that are safe to retry with backoff:
// lock-acquisition timeouts and store unavailability. Business-rule
// failures are never wrapped in it.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "temporarily unavailable: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is safe to retry.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
