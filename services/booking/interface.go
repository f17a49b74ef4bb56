package booking

import (
	"context"

	"localserve/models"
)

// BookingService owns the booking lifecycle: creation with routing and
// pricing, payment confirmation, status transitions, and the admin surface.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResponse, error)
	RetryPaymentOrder(ctx context.Context, bookingID string) (*models.GatewayOrder, error)
	ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (*models.PaymentResult, error)
	UpdateStatus(ctx context.Context, bookingID string, req models.UpdateStatusRequest) (*models.Booking, error)
	ManualAssign(ctx context.Context, bookingID, providerID string) (*models.Booking, *models.Provider, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookings(ctx context.Context, q models.ListBookingsQuery) ([]models.Booking, int64, error)
}
