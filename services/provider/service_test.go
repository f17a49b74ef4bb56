package provider

import (
	"context"
	"errors"
	"testing"

	bookingRepo "localserve/database/repository/booking"
	providerRepo "localserve/database/repository/provider"
	"localserve/models"

	"go.uber.org/zap"
)

type fakeProviders struct {
	byID map[string]*models.Provider
}

func (f *fakeProviders) GetByID(id string) (*models.Provider, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProviders) Create(p *models.Provider) error { return nil }
func (f *fakeProviders) Update(p *models.Provider) error { return nil }
func (f *fakeProviders) GetEligible(serviceID, branchID string) ([]models.Provider, error) {
	return nil, nil
}
func (f *fakeProviders) IncrementCompleted(id string) error { return nil }

func (f *fakeProviders) SetAvailability(id string, available bool) (bool, error) {
	p, ok := f.byID[id]
	if !ok {
		return false, providerRepo.ErrNotFound
	}
	if p.Available == available {
		return false, nil
	}
	p.Available = available
	return true, nil
}

func (f *fakeProviders) UpdateLocation(id string, lat, lng float64) error {
	p, ok := f.byID[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Latitude = &lat
	p.Longitude = &lng
	return nil
}

var _ providerRepo.ProviderRepository = (*fakeProviders)(nil)

type fakeBookings struct {
	byID map[string]*models.Booking
}

func (f *fakeBookings) GetByID(id string) (*models.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookings) Create(b *models.Booking) error { return nil }
func (f *fakeBookings) Update(b *models.Booking) error { return nil }
func (f *fakeBookings) List(q models.ListBookingsQuery) ([]models.Booking, int64, error) {
	return nil, 0, nil
}
func (f *fakeBookings) MarkPaid(id, gatewayPaymentID string) (bool, error) { return false, nil }
func (f *fakeBookings) MarkPaymentFailed(id string) (bool, error)          { return false, nil }
func (f *fakeBookings) Transition(id string, from, to models.BookingStatus, set map[string]interface{}) (bool, error) {
	return false, nil
}
func (f *fakeBookings) AssignProvider(id, providerID string, from models.BookingStatus) (bool, error) {
	return false, nil
}
func (f *fakeBookings) AppendMediaRef(id, phase, url string) error { return nil }

func (f *fakeBookings) UnassignProvider(id, providerID string) (bool, error) {
	b, ok := f.byID[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.Status != models.BookingAssigned || b.ProviderID != providerID {
		return false, nil
	}
	b.ProviderID = ""
	b.Status = models.BookingCreated
	return true, nil
}

var _ bookingRepo.BookingRepository = (*fakeBookings)(nil)

type nopNotifier struct{ messages int }

func (n *nopNotifier) Notify(ctx context.Context, text string) { n.messages++ }

func newTestService(p *models.Provider, b *models.Booking) (*DefaultProviderService, *fakeProviders, *fakeBookings, *nopNotifier) {
	providers := &fakeProviders{byID: map[string]*models.Provider{}}
	if p != nil {
		providers.byID[p.ID] = p
	}
	bookings := &fakeBookings{byID: map[string]*models.Booking{}}
	if b != nil {
		bookings.byID[b.ID] = b
	}
	notifier := &nopNotifier{}
	svc := &DefaultProviderService{
		Providers: providers,
		Bookings:  bookings,
		Notifier:  notifier,
		Logger:    zap.NewNop(),
	}
	return svc, providers, bookings, notifier
}

func assignedBooking(providerID string) *models.Booking {
	return &models.Booking{
		ID:         "bk1",
		ProviderID: providerID,
		Status:     models.BookingAssigned,
		Payment:    models.PaymentInfo{Status: models.PaymentPaid},
	}
}

func TestAcceptAssignment(t *testing.T) {
	p := &models.Provider{ID: "p1", Available: true, Active: true}
	svc, providers, _, _ := newTestService(p, assignedBooking("p1"))

	if err := svc.AcceptAssignment(context.Background(), "p1", "bk1"); err != nil {
		t.Fatalf("AcceptAssignment: %v", err)
	}
	if providers.byID["p1"].Available {
		t.Error("accepting provider still marked available")
	}
}

func TestAcceptAssignment_NotAssigned(t *testing.T) {
	p := &models.Provider{ID: "p2", Available: true, Active: true}
	svc, providers, _, _ := newTestService(p, assignedBooking("p1"))

	err := svc.AcceptAssignment(context.Background(), "p2", "bk1")
	if !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("err = %v, want ErrNotAssigned", err)
	}
	if !providers.byID["p2"].Available {
		t.Error("availability flipped for a booking the provider does not hold")
	}
}

func TestAcceptAssignment_WrongStatus(t *testing.T) {
	p := &models.Provider{ID: "p1", Available: true, Active: true}
	b := assignedBooking("p1")
	b.Status = models.BookingInProgress
	svc, _, _, _ := newTestService(p, b)

	if err := svc.AcceptAssignment(context.Background(), "p1", "bk1"); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("err = %v, want ErrNotAssigned", err)
	}
}

func TestDeclineAssignment(t *testing.T) {
	p := &models.Provider{ID: "p1", Available: false, Active: true}
	svc, providers, bookings, notifier := newTestService(p, assignedBooking("p1"))

	if err := svc.DeclineAssignment(context.Background(), "p1", "bk1"); err != nil {
		t.Fatalf("DeclineAssignment: %v", err)
	}

	b := bookings.byID["bk1"]
	if b.Status != models.BookingCreated || b.ProviderID != "" {
		t.Errorf("booking after decline = status %s provider %q, want created/unassigned", b.Status, b.ProviderID)
	}
	if b.Payment.Status != models.PaymentPaid {
		t.Errorf("payment status changed to %s on decline", b.Payment.Status)
	}
	if !b.NeedsManualAssignment() {
		t.Error("declined booking should surface in the manual-assignment pool")
	}
	if !providers.byID["p1"].Available {
		t.Error("declining provider not freed")
	}
	if notifier.messages != 1 {
		t.Errorf("notifications = %d, want 1", notifier.messages)
	}
}

func TestDeclineAssignment_NotHolder(t *testing.T) {
	p := &models.Provider{ID: "p2", Available: false, Active: true}
	svc, _, bookings, _ := newTestService(p, assignedBooking("p1"))

	if err := svc.DeclineAssignment(context.Background(), "p2", "bk1"); !errors.Is(err, ErrNotAssigned) {
		t.Fatalf("err = %v, want ErrNotAssigned", err)
	}
	if bookings.byID["bk1"].ProviderID != "p1" {
		t.Error("decline by non-holder unassigned the booking")
	}
}

func TestSetAvailability(t *testing.T) {
	p := &models.Provider{ID: "p1", Available: false, Active: true}
	svc, _, _, _ := newTestService(p, nil)

	got, err := svc.SetAvailability(context.Background(), "p1", true)
	if err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	if !got.Available {
		t.Error("provider not marked available")
	}

	// Re-applying the same state is a no-op, not an error.
	got, err = svc.SetAvailability(context.Background(), "p1", true)
	if err != nil {
		t.Fatalf("repeat SetAvailability: %v", err)
	}
	if !got.Available {
		t.Error("availability lost on repeat call")
	}
}

func TestUpdateLocation(t *testing.T) {
	p := &models.Provider{ID: "p1", Available: true, Active: true}
	svc, providers, _, _ := newTestService(p, nil)

	if err := svc.UpdateLocation(context.Background(), "p1", 26.91, 75.79); err != nil {
		t.Fatalf("UpdateLocation: %v", err)
	}
	stored := providers.byID["p1"]
	if !stored.HasLocation() || *stored.Latitude != 26.91 || *stored.Longitude != 75.79 {
		t.Errorf("location not stored: %+v", stored)
	}

	if err := svc.UpdateLocation(context.Background(), "missing", 0, 0); !errors.Is(err, providerRepo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
