package models

import "time"

// BookingStatus is the operational lifecycle state of a booking. It is
// orthogonal to the payment status carried in PaymentInfo.
type BookingStatus string

const (
	BookingCreated    BookingStatus = "created"
	BookingAssigned   BookingStatus = "assigned"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// PaymentStatus tracks the gateway side of a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// allowedTransitions encodes the booking state flow as data. Completed and
// cancelled are terminal; cancellation is reachable from any earlier state.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingCreated:    {BookingAssigned, BookingCancelled},
	BookingAssigned:   {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether moving a booking from one status to another
// is legal. Every call site that mutates Booking.Status must consult this.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidBookingStatus reports whether s is one of the five known statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingCreated, BookingAssigned, BookingInProgress, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// PaymentInfo is the gateway snapshot embedded in a booking.
type PaymentInfo struct {
	Method           string        `bson:"method" json:"method"`
	GatewayOrderID   string        `bson:"gateway_order_id" json:"gateway_order_id"`
	GatewayPaymentID string        `bson:"gateway_payment_id,omitempty" json:"gateway_payment_id,omitempty"`
	Status           PaymentStatus `bson:"status" json:"status"`
}

// Booking is the central record of the fulfillment pipeline. Identity and
// customer/service snapshot fields are written once at creation; status,
// payment, provider and audit fields mutate through the booking service.
type Booking struct {
	ID            string `bson:"id" json:"id"`
	BookingNumber string `bson:"booking_number" json:"booking_number"` // Human-readable, monotonic per day

	// Customer snapshot, denormalized at creation and never re-synced.
	CustomerName      string `bson:"customer_name" json:"customer_name"`
	CustomerPhone     string `bson:"customer_phone" json:"customer_phone"`
	CustomerAccountID string `bson:"customer_account_id,omitempty" json:"customer_account_id,omitempty"`

	// Service snapshot so later catalog edits don't rewrite history.
	ServiceID       string `bson:"service_id" json:"service_id"`
	ServiceName     string `bson:"service_name" json:"service_name"`
	ServiceCategory string `bson:"service_category" json:"service_category"`

	// Location.
	Address    string  `bson:"address" json:"address"`
	Latitude   float64 `bson:"latitude" json:"latitude"`
	Longitude  float64 `bson:"longitude" json:"longitude"`
	PostalCode string  `bson:"postal_code" json:"postal_code"`
	City       string  `bson:"city,omitempty" json:"city,omitempty"`

	// Routing and pricing outputs.
	BranchID       string  `bson:"branch_id" json:"branch_id"`
	ProviderID     string  `bson:"provider_id,omitempty" json:"provider_id,omitempty"`
	DistanceKm     float64 `bson:"distance_km" json:"distance_km"`
	BasePrice      float64 `bson:"base_price" json:"base_price"`
	DistanceCharge float64 `bson:"distance_charge" json:"distance_charge"`
	TotalAmount    float64 `bson:"total_amount" json:"total_amount"` // Always BasePrice + DistanceCharge

	Status  BookingStatus `bson:"status" json:"status"`
	Payment PaymentInfo   `bson:"payment" json:"payment"`

	// Audit fields.
	ScheduledAt        time.Time  `bson:"scheduled_at" json:"scheduled_at"`
	Notes              string     `bson:"notes,omitempty" json:"notes,omitempty"`
	AdminNotes         string     `bson:"admin_notes,omitempty" json:"admin_notes,omitempty"`
	BeforePhotos       []string   `bson:"before_photos,omitempty" json:"before_photos,omitempty"`
	AfterPhotos        []string   `bson:"after_photos,omitempty" json:"after_photos,omitempty"`
	CancellationReason string     `bson:"cancellation_reason,omitempty" json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CancelledAt        *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `bson:"updated_at" json:"updated_at"`
}

// RecomputeTotal re-derives TotalAmount from its components. Callers that
// touch BasePrice or DistanceCharge must call this before persisting.
func (b *Booking) RecomputeTotal() {
	b.TotalAmount = b.BasePrice + b.DistanceCharge
}

// NeedsManualAssignment reports whether the booking is paid but could not be
// auto-assigned, which the admin surface lists for manual intervention.
func (b *Booking) NeedsManualAssignment() bool {
	return b.Payment.Status == PaymentPaid && b.Status == BookingCreated && b.ProviderID == ""
}
