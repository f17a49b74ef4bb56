package booking

import (
	"errors"
	"fmt"

	"localserve/models"
)

// ErrSignatureMismatch means the gateway confirmation failed verification.
// The booking's payment is marked failed; operational status is untouched.
var ErrSignatureMismatch = errors.New("payment signature verification failed")

// ErrNoBranches means no active service center exists to route the booking to.
var ErrNoBranches = errors.New("no service centers available")

// ErrNoGatewayOrder means the booking has no stored gateway order to verify
// a confirmation against, typically because order creation failed at booking
// time. The caller must retry order creation first; the payment stays
// pending.
var ErrNoGatewayOrder = errors.New("booking has no payment order")

// ErrPaymentFailed means the booking's payment was already marked failed by
// a mismatched confirmation; a later confirmation cannot revive it.
var ErrPaymentFailed = errors.New("payment was already marked failed")

// ValidationError reports a missing or malformed request field, detected
// before any external call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// UnavailableError rejects a booking whose address cannot be served. No
// booking record is persisted in this case.
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	return e.Reason
}

// InvalidTransitionError rejects an illegal status change.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}

// ConflictError means a concurrent actor changed the booking between read
// and conditional write.
type ConflictError struct {
	BookingID string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking %s was modified concurrently", e.BookingID)
}
