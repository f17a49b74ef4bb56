package models

import "time"

// CreateBookingRequest is the inbound payload for booking creation.
type CreateBookingRequest struct {
	ServiceID     string    `json:"service_id" binding:"required"`
	CustomerName  string    `json:"customer_name" binding:"required"`
	CustomerPhone string    `json:"customer_phone" binding:"required"`
	AccountID     string    `json:"account_id,omitempty"`
	Address       string    `json:"address" binding:"required"`
	PostalCode    string    `json:"postal_code" binding:"required"`
	ScheduledAt   time.Time `json:"scheduled_at" binding:"required"`
	Notes         string    `json:"notes,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"` // defaults to "razorpay"
}

// ConfirmPaymentRequest carries the gateway callback fields for verification.
type ConfirmPaymentRequest struct {
	BookingID        string `json:"booking_id" binding:"required"`
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// UpdateStatusRequest is the admin status-change payload.
type UpdateStatusRequest struct {
	Status             BookingStatus `json:"status" binding:"required"`
	AdminNotes         string        `json:"admin_notes,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
}

// ManualAssignRequest is the admin manual-assignment payload.
type ManualAssignRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
}

// ProviderLocationRequest updates a provider's live coordinates.
type ProviderLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required"`
	Longitude float64 `json:"longitude" binding:"required"`
}

// ProviderAvailabilityRequest flips a provider's availability flag.
type ProviderAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

// ListBookingsQuery captures the admin listing filters.
type ListBookingsQuery struct {
	Status      BookingStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Skip        int64
	Limit       int64
}
