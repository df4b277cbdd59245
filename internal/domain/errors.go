package domain

import (
	"errors"
	"fmt"
	"strings"
)

// The booking error taxonomy. Validation and conflict errors are pure
// checks with nothing to unwind; persistence errors during the first write
// are total failures; failures after the reservation record exists surface
// as *PartialCommitError so callers never collapse "you're booked, contact
// support" into "please retry".
var (
	ErrInvalidRequest     = errors.New("invalid reservation request")
	ErrRangeBlocked       = errors.New("selected range contains blocked dates")
	ErrDateAlreadyBlocked = errors.New("date is already blocked")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTransition  = errors.New("invalid reservation status transition")
	ErrPersistence        = errors.New("store operation failed")
)

// PartialCommitError reports that the reservation record was persisted but
// one or more dependent writes failed. It carries enough context for manual
// or automated reconciliation.
type PartialCommitError struct {
	ReservationID string
	FailedWrites  []string
	Err           error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("reservation %s committed but dependent writes failed (%s): %v",
		e.ReservationID, strings.Join(e.FailedWrites, ", "), e.Err)
}

func (e *PartialCommitError) Unwrap() error { return e.Err }

// IsAvailabilityConflict reports whether err means the requested dates are
// no longer available and the user must pick again.
func IsAvailabilityConflict(err error) bool {
	return errors.Is(err, ErrRangeBlocked) || errors.Is(err, ErrDateAlreadyBlocked)
}
