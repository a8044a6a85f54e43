package reservation

import (
	"errors"
	"fmt"
)

// Reason codes for rejected input. These are stable identifiers used in
// metrics labels; the client only ever sees the human message.
const (
	ReasonMissingFields   = "missing_fields"
	ReasonInvalidEmail    = "invalid_email"
	ReasonInvalidMobile   = "invalid_mobile"
	ReasonInvalidName     = "invalid_name"
	ReasonInvalidDate     = "invalid_date"
	ReasonPastDate        = "past_date"
	ReasonDateTooFarOut   = "date_too_far_out"
	ReasonDuplicateEmail  = "duplicate_email"
	ReasonDuplicateMobile = "duplicate_mobile"
)

// ValidationError reports malformed or out-of-range client input.
type ValidationError struct {
	Reason  string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError reports a duplicate reservation, detected either by the
// pre-insert check or by the storage-layer unique constraint. Field is
// "email" or "mobile number", phrased for direct use in the client message.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("A reservation with this %s already exists", e.Field)
}

// ErrUnavailable indicates the persistence backend cannot be reached.
var ErrUnavailable = errors.New("persistence backend unavailable")
