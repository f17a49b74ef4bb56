package bookingRepo

import "localserve/models"

// BookingRepository defines data access for bookings.
//
// The Mark*/Transition/AssignProvider methods are conditional updates: they
// apply only when the record is still in the expected prior state and report
// whether the write matched. Duplicate gateway callbacks and concurrent admin
// actions race through these, so callers must branch on the returned bool
// instead of assuming success.
type BookingRepository interface {
	Create(b *models.Booking) error
	GetByID(id string) (*models.Booking, error)
	Update(b *models.Booking) error
	List(q models.ListBookingsQuery) ([]models.Booking, int64, error)

	// MarkPaid flips payment.status pending -> paid and records the gateway
	// payment id. Returns false when the booking was not in pending.
	MarkPaid(id, gatewayPaymentID string) (bool, error)

	// MarkPaymentFailed flips payment.status pending -> failed. Operational
	// status is untouched.
	MarkPaymentFailed(id string) (bool, error)

	// Transition moves status from -> to, applying extra field updates in the
	// same write. Returns false when the booking was no longer in from.
	Transition(id string, from, to models.BookingStatus, set map[string]interface{}) (bool, error)

	// AssignProvider sets the provider and moves status from -> assigned in
	// one conditional write.
	AssignProvider(id, providerID string, from models.BookingStatus) (bool, error)

	// UnassignProvider clears the provider and returns an assigned booking to
	// created, used when a provider declines. The filter pins the expected
	// provider so a concurrent reassignment is not undone.
	UnassignProvider(id, providerID string) (bool, error)

	// AppendMediaRef pushes an uploaded media URL onto the booking's before
	// or after photo list.
	AppendMediaRef(id, phase, url string) error
}
