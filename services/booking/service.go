package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "localserve/database/repository/booking"
	branchRepo "localserve/database/repository/branch"
	catalogRepo "localserve/database/repository/catalog"
	providerRepo "localserve/database/repository/provider"
	"localserve/models"
	"localserve/services/assignment"
	"localserve/services/geo"
	"localserve/services/notification"
	"localserve/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Branches  branchRepo.BranchRepository
	Catalog   catalogRepo.CatalogRepository
	Providers providerRepo.ProviderRepository

	Geo      *geo.Engine
	Geocoder geo.Geocoder
	Gateway  payment.Gateway
	Verifier *payment.Verifier
	Assigner assignment.Engine
	Notifier notification.Notifier
	Numbers  NumberGenerator
	Logger   *zap.Logger

	Currency     string
	GatewayKeyID string
}

// CreateBooking validates the request, resolves the address, routes it to
// the nearest active branch, prices the job, persists the booking and opens
// a gateway order for the total. A gateway failure after the booking row is
// persisted does not roll it back: the booking is returned without order
// details and payment can be retried.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingResponse, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	svc, err := s.Catalog.GetServiceByID(req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, &ValidationError{Field: "service_id", Message: "service is not currently offered"}
	}

	loc, err := s.Geocoder.Geocode(ctx, req.Address, req.PostalCode)
	if err != nil {
		if errors.Is(err, geo.ErrUnresolvable) {
			return nil, &UnavailableError{Reason: "address could not be resolved"}
		}
		return nil, fmt.Errorf("geocoding failed: %w", err)
	}

	branches, err := s.Branches.GetActive()
	if err != nil {
		return nil, fmt.Errorf("failed to load branches: %w", err)
	}
	branch, distanceKm := s.Geo.NearestBranch(branches, loc.Latitude, loc.Longitude)
	if branch == nil {
		return nil, ErrNoBranches
	}

	avail := s.Geo.ServiceAvailability(distanceKm, req.PostalCode)
	if !avail.Available {
		return nil, &UnavailableError{Reason: avail.Reason}
	}
	surcharge, ok := s.Geo.Surcharge(distanceKm, s.Geo.InServiceMetro(req.PostalCode))
	if !ok {
		// Unreachable when ServiceAvailability passed; both derive from the
		// same tiers.
		return nil, &UnavailableError{Reason: avail.Reason}
	}

	number, err := s.Numbers.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate booking number: %w", err)
	}

	method := req.PaymentMethod
	if method == "" {
		method = "razorpay"
	}

	now := time.Now()
	b := &models.Booking{
		ID:                uuid.New().String(),
		BookingNumber:     number,
		CustomerName:      req.CustomerName,
		CustomerPhone:     req.CustomerPhone,
		CustomerAccountID: req.AccountID,
		ServiceID:         svc.ID,
		ServiceName:       svc.Name,
		ServiceCategory:   svc.Category,
		Address:           req.Address,
		Latitude:          loc.Latitude,
		Longitude:         loc.Longitude,
		PostalCode:        req.PostalCode,
		City:              loc.City,
		BranchID:          branch.ID,
		DistanceKm:        distanceKm,
		BasePrice:         svc.BasePrice,
		DistanceCharge:    surcharge,
		Status:            models.BookingCreated,
		Payment: models.PaymentInfo{
			Method: method,
			Status: models.PaymentPending,
		},
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.RecomputeTotal()

	if err := s.Bookings.Create(b); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	resp := &models.BookingResponse{
		BookingID:      b.ID,
		BookingNumber:  b.BookingNumber,
		BranchName:     branch.Name,
		DistanceKm:     b.DistanceKm,
		BasePrice:      b.BasePrice,
		DistanceCharge: b.DistanceCharge,
		TotalAmount:    b.TotalAmount,
		Status:         b.Status,
	}

	orderID, err := s.Gateway.CreateOrder(ctx, payment.MinorUnits(b.TotalAmount), s.Currency, b.BookingNumber)
	if err != nil {
		// The booking row stays; payment can be retried against it.
		s.Logger.Error("gateway order creation failed",
			zap.String("booking_id", b.ID), zap.Error(err))
	} else {
		b.Payment.GatewayOrderID = orderID
		if err := s.Bookings.Update(b); err != nil {
			s.Logger.Error("failed to store gateway order id",
				zap.String("booking_id", b.ID), zap.Error(err))
		}
		resp.Gateway = &models.GatewayOrder{
			OrderID:  orderID,
			Amount:   payment.MinorUnits(b.TotalAmount),
			Currency: s.Currency,
			KeyID:    s.GatewayKeyID,
		}
	}

	s.Notifier.Notify(ctx, fmt.Sprintf("New booking %s: %s at %s (%.2f km from %s), total %.2f %s",
		b.BookingNumber, b.ServiceName, b.Address, b.DistanceKm, branch.Name, b.TotalAmount, s.Currency))

	return resp, nil
}

// RetryPaymentOrder opens a gateway order for a booking whose creation-time
// order attempt failed. When an order already exists and the payment is
// still pending, the existing order descriptor is returned unchanged, so the
// call is safe to repeat.
func (s *DefaultBookingService) RetryPaymentOrder(ctx context.Context, bookingID string) (*models.GatewayOrder, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b.Payment.Status != models.PaymentPending {
		return nil, &ValidationError{Field: "payment", Message: fmt.Sprintf("payment is %s, not pending", b.Payment.Status)}
	}

	if b.Payment.GatewayOrderID == "" {
		orderID, err := s.Gateway.CreateOrder(ctx, payment.MinorUnits(b.TotalAmount), s.Currency, b.BookingNumber)
		if err != nil {
			return nil, fmt.Errorf("gateway order creation failed: %w", err)
		}
		b.Payment.GatewayOrderID = orderID
		if err := s.Bookings.Update(b); err != nil {
			return nil, fmt.Errorf("failed to store gateway order id: %w", err)
		}
	}

	return &models.GatewayOrder{
		OrderID:  b.Payment.GatewayOrderID,
		Amount:   payment.MinorUnits(b.TotalAmount),
		Currency: s.Currency,
		KeyID:    s.GatewayKeyID,
	}, nil
}

// ConfirmPayment verifies the gateway confirmation. A mismatched signature
// marks the payment failed and leaves operational status unchanged. A valid
// signature flips payment to paid exactly once (conditional write) and
// triggers auto-assignment; re-delivery of an already-verified confirmation
// is a no-op.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, req models.ConfirmPaymentRequest) (*models.PaymentResult, error) {
	b, err := s.Bookings.GetByID(req.BookingID)
	if err != nil {
		return nil, err
	}

	if b.Payment.Status == models.PaymentPaid {
		// Duplicate gateway callback; nothing to re-verify or re-assign.
		return &models.PaymentResult{
			BookingID:        b.ID,
			Status:           b.Status,
			PaymentStatus:    b.Payment.Status,
			ProviderID:       b.ProviderID,
			ManualAssignment: b.NeedsManualAssignment(),
			AlreadyPaid:      true,
		}, nil
	}

	if b.Payment.GatewayOrderID == "" {
		// Order creation failed at booking time and was never retried. There
		// is nothing to verify against; the payment stays pending so a
		// retried order can still be confirmed.
		return nil, ErrNoGatewayOrder
	}

	if b.Payment.GatewayOrderID != req.GatewayOrderID ||
		!s.Verifier.Verify(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		if _, err := s.Bookings.MarkPaymentFailed(b.ID); err != nil {
			return nil, err
		}
		s.Logger.Warn("payment signature mismatch",
			zap.String("booking_id", b.ID), zap.String("gateway_order_id", req.GatewayOrderID))
		return nil, ErrSignatureMismatch
	}

	ok, err := s.Bookings.MarkPaid(b.ID, req.GatewayPaymentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		fresh, err := s.Bookings.GetByID(b.ID)
		if err != nil {
			return nil, err
		}
		if fresh.Payment.Status == models.PaymentPaid {
			// Lost the race against a concurrent confirmation; treat as the
			// idempotent path.
			return &models.PaymentResult{
				BookingID:        fresh.ID,
				Status:           fresh.Status,
				PaymentStatus:    fresh.Payment.Status,
				ProviderID:       fresh.ProviderID,
				ManualAssignment: fresh.NeedsManualAssignment(),
				AlreadyPaid:      true,
			}, nil
		}
		// A prior mismatched confirmation marked the payment failed; even a
		// correctly signed retry cannot revive it.
		return nil, ErrPaymentFailed
	}
	b.Payment.Status = models.PaymentPaid
	b.Payment.GatewayPaymentID = req.GatewayPaymentID

	result := &models.PaymentResult{
		BookingID:     b.ID,
		PaymentStatus: models.PaymentPaid,
	}

	provider, err := s.Assigner.AutoAssign(ctx, b)
	switch {
	case err == nil:
		result.Status = models.BookingAssigned
		result.ProviderID = provider.ID
		s.Notifier.Notify(ctx, fmt.Sprintf("Booking %s paid and assigned to %s", b.BookingNumber, provider.Name))
	case errors.Is(err, assignment.ErrNoEligibleProvider):
		result.Status = b.Status
		result.ManualAssignment = true
		s.Notifier.Notify(ctx, fmt.Sprintf("Booking %s paid, manual assignment required (no eligible provider)", b.BookingNumber))
	default:
		s.Logger.Error("auto-assignment failed",
			zap.String("booking_id", b.ID), zap.Error(err))
		result.Status = b.Status
		result.ManualAssignment = true
		s.Notifier.Notify(ctx, fmt.Sprintf("Booking %s paid, manual assignment required (assignment error)", b.BookingNumber))
	}

	return result, nil
}

// UpdateStatus applies an admin status change through the transition table.
// Re-applying the current status only updates the admin notes; timestamps
// already stamped are never overwritten.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, req models.UpdateStatusRequest) (*models.Booking, error) {
	if !models.ValidBookingStatus(req.Status) {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", req.Status)}
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status == req.Status {
		if req.AdminNotes != "" {
			b.AdminNotes = req.AdminNotes
			if err := s.Bookings.Update(b); err != nil {
				return nil, err
			}
		}
		return b, nil
	}

	if !models.CanTransition(b.Status, req.Status) {
		return nil, &InvalidTransitionError{From: b.Status, To: req.Status}
	}

	set := map[string]interface{}{}
	if req.AdminNotes != "" {
		set["admin_notes"] = req.AdminNotes
	}
	now := time.Now()
	switch req.Status {
	case models.BookingCompleted:
		if b.CompletedAt == nil {
			set["completed_at"] = now
		}
	case models.BookingCancelled:
		if b.CancelledAt == nil {
			set["cancelled_at"] = now
		}
		if req.CancellationReason != "" {
			set["cancellation_reason"] = req.CancellationReason
		}
	}

	ok, err := s.Bookings.Transition(bookingID, b.Status, req.Status, set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ConflictError{BookingID: bookingID}
	}

	return s.Bookings.GetByID(bookingID)
}

// ManualAssign is the admin override: the assignment engine only validates
// the provider, so this caller applies the booking mutation and the provider
// counter itself.
func (s *DefaultBookingService) ManualAssign(ctx context.Context, bookingID, providerID string) (*models.Booking, *models.Provider, error) {
	provider, err := s.Assigner.ManualAssign(ctx, bookingID, providerID)
	if err != nil {
		return nil, nil, err
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, nil, err
	}

	switch b.Status {
	case models.BookingCreated, models.BookingAssigned:
		// created -> assigned is the normal path; assigned -> assigned is an
		// explicit admin reassignment.
	default:
		return nil, nil, &InvalidTransitionError{From: b.Status, To: models.BookingAssigned}
	}

	ok, err := s.Bookings.AssignProvider(bookingID, provider.ID, b.Status)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, &ConflictError{BookingID: bookingID}
	}

	if err := s.Providers.IncrementCompleted(provider.ID); err != nil {
		s.Logger.Error("failed to increment provider booking counter",
			zap.String("provider_id", provider.ID), zap.Error(err))
	}

	s.Notifier.Notify(ctx, fmt.Sprintf("Booking %s manually assigned to %s", b.BookingNumber, provider.Name))

	updated, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, nil, err
	}
	return updated, provider, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.Bookings.GetByID(bookingID)
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, q models.ListBookingsQuery) ([]models.Booking, int64, error) {
	return s.Bookings.List(q)
}

func validateCreateRequest(req models.CreateBookingRequest) error {
	switch {
	case strings.TrimSpace(req.ServiceID) == "":
		return &ValidationError{Field: "service_id", Message: "required"}
	case strings.TrimSpace(req.CustomerName) == "":
		return &ValidationError{Field: "customer_name", Message: "required"}
	case strings.TrimSpace(req.CustomerPhone) == "":
		return &ValidationError{Field: "customer_phone", Message: "required"}
	case strings.TrimSpace(req.Address) == "":
		return &ValidationError{Field: "address", Message: "required"}
	case strings.TrimSpace(req.PostalCode) == "":
		return &ValidationError{Field: "postal_code", Message: "required"}
	case req.ScheduledAt.IsZero():
		return &ValidationError{Field: "scheduled_at", Message: "required"}
	}
	return nil
}
