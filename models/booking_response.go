// models/booking_response.go
package models

// GatewayOrder describes the payment-gateway order the client must complete.
// Amount is in the gateway's minor currency unit (paise).
type GatewayOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// BookingResponse is returned by booking creation: the summary of the
// persisted booking plus the gateway order descriptor the client pays
// against.
type BookingResponse struct {
	BookingID      string        `json:"booking_id"`
	BookingNumber  string        `json:"booking_number"`
	BranchName     string        `json:"branch_name"`
	DistanceKm     float64       `json:"distance_km"`
	BasePrice      float64       `json:"base_price"`
	DistanceCharge float64       `json:"distance_charge"`
	TotalAmount    float64       `json:"total_amount"`
	Status         BookingStatus `json:"status"`
	Gateway        *GatewayOrder `json:"gateway,omitempty"`
}

// PaymentResult summarizes a confirmPayment call: the booking's statuses and
// whether auto-assignment succeeded or manual intervention is required.
type PaymentResult struct {
	BookingID        string        `json:"booking_id"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	ProviderID       string        `json:"provider_id,omitempty"`
	ManualAssignment bool          `json:"manual_assignment_required"`
	AlreadyPaid      bool          `json:"already_paid,omitempty"`
}
