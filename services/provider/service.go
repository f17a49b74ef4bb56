package provider

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "localserve/database/repository/booking"
	providerRepo "localserve/database/repository/provider"
	"localserve/models"
	"localserve/services/notification"

	"go.uber.org/zap"
)

// ErrNotAssigned is returned when a provider acts on a booking that is not
// currently assigned to them.
var ErrNotAssigned = errors.New("booking is not assigned to this provider")

// ProviderService is the provider-facing surface: accepting or declining an
// assignment and maintaining own availability and location.
type ProviderService interface {
	Get(ctx context.Context, providerID string) (*models.Provider, error)
	AcceptAssignment(ctx context.Context, providerID, bookingID string) error
	DeclineAssignment(ctx context.Context, providerID, bookingID string) error
	SetAvailability(ctx context.Context, providerID string, available bool) (*models.Provider, error)
	UpdateLocation(ctx context.Context, providerID string, lat, lng float64) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Providers providerRepo.ProviderRepository
	Bookings  bookingRepo.BookingRepository
	Notifier  notification.Notifier
	Logger    *zap.Logger
}

func (s *DefaultProviderService) Get(ctx context.Context, providerID string) (*models.Provider, error) {
	return s.Providers.GetByID(providerID)
}

// AcceptAssignment confirms the provider will serve the booking and marks
// them busy so the assignment engine skips them until the job closes.
func (s *DefaultProviderService) AcceptAssignment(ctx context.Context, providerID, bookingID string) error {
	if err := s.checkAssigned(providerID, bookingID); err != nil {
		return err
	}
	if _, err := s.Providers.SetAvailability(providerID, false); err != nil {
		return err
	}
	return nil
}

// DeclineAssignment returns the booking to the manual-assignment pool and
// frees the provider. The unassignment is conditional on the provider still
// holding the booking, so a concurrent admin reassignment is not undone.
func (s *DefaultProviderService) DeclineAssignment(ctx context.Context, providerID, bookingID string) error {
	if err := s.checkAssigned(providerID, bookingID); err != nil {
		return err
	}

	ok, err := s.Bookings.UnassignProvider(bookingID, providerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotAssigned
	}

	if _, err := s.Providers.SetAvailability(providerID, true); err != nil {
		s.Logger.Error("failed to free declining provider",
			zap.String("provider_id", providerID), zap.Error(err))
	}

	s.Notifier.Notify(ctx, fmt.Sprintf("Provider declined booking %s, manual assignment required", bookingID))
	return nil
}

func (s *DefaultProviderService) SetAvailability(ctx context.Context, providerID string, available bool) (*models.Provider, error) {
	if _, err := s.Providers.SetAvailability(providerID, available); err != nil {
		return nil, err
	}
	return s.Providers.GetByID(providerID)
}

func (s *DefaultProviderService) UpdateLocation(ctx context.Context, providerID string, lat, lng float64) error {
	return s.Providers.UpdateLocation(providerID, lat, lng)
}

func (s *DefaultProviderService) checkAssigned(providerID, bookingID string) error {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return err
	}
	if b.ProviderID != providerID || b.Status != models.BookingAssigned {
		return ErrNotAssigned
	}
	return nil
}
