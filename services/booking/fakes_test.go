package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	bookingRepo "localserve/database/repository/booking"
	branchRepo "localserve/database/repository/branch"
	catalogRepo "localserve/database/repository/catalog"
	providerRepo "localserve/database/repository/provider"
	"localserve/models"
	"localserve/services/geo"
)

// memBookingRepo is an in-memory BookingRepository that mirrors the
// conditional-write semantics of the Mongo implementation.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *memBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) Update(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return bookingRepo.ErrNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) List(q models.ListBookingsQuery) ([]models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		if q.CreatedFrom != nil && b.CreatedAt.Before(*q.CreatedFrom) {
			continue
		}
		if q.CreatedTo != nil && b.CreatedAt.After(*q.CreatedTo) {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (r *memBookingRepo) MarkPaid(id, gatewayPaymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.Payment.Status != models.PaymentPending {
		return false, nil
	}
	b.Payment.Status = models.PaymentPaid
	b.Payment.GatewayPaymentID = gatewayPaymentID
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *memBookingRepo) MarkPaymentFailed(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.Payment.Status != models.PaymentPending {
		return false, nil
	}
	b.Payment.Status = models.PaymentFailed
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *memBookingRepo) Transition(id string, from, to models.BookingStatus, set map[string]interface{}) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	applySet(b, set)
	b.UpdatedAt = time.Now()
	return true, nil
}

func applySet(b *models.Booking, set map[string]interface{}) {
	for k, v := range set {
		switch k {
		case "admin_notes":
			b.AdminNotes = v.(string)
		case "cancellation_reason":
			b.CancellationReason = v.(string)
		case "completed_at":
			ts := v.(time.Time)
			b.CompletedAt = &ts
		case "cancelled_at":
			ts := v.(time.Time)
			b.CancelledAt = &ts
		}
	}
}

func (r *memBookingRepo) AssignProvider(id, providerID string, from models.BookingStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return false, nil
	}
	b.ProviderID = providerID
	b.Status = models.BookingAssigned
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *memBookingRepo) UnassignProvider(id, providerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return false, bookingRepo.ErrNotFound
	}
	if b.Status != models.BookingAssigned || b.ProviderID != providerID {
		return false, nil
	}
	b.ProviderID = ""
	b.Status = models.BookingCreated
	b.UpdatedAt = time.Now()
	return true, nil
}

func (r *memBookingRepo) AppendMediaRef(id, phase, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if phase == "before" {
		b.BeforePhotos = append(b.BeforePhotos, url)
	} else {
		b.AfterPhotos = append(b.AfterPhotos, url)
	}
	return nil
}

func (r *memBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

var _ bookingRepo.BookingRepository = (*memBookingRepo)(nil)

// memProviderRepo is an in-memory ProviderRepository.
type memProviderRepo struct {
	mu          sync.Mutex
	providers   map[string]*models.Provider
	order       []string
	incremented map[string]int
}

func newMemProviderRepo(providers ...*models.Provider) *memProviderRepo {
	r := &memProviderRepo{providers: map[string]*models.Provider{}, incremented: map[string]int{}}
	for _, p := range providers {
		cp := *p
		r.providers[p.ID] = &cp
		r.order = append(r.order, p.ID)
	}
	return r
}

func (r *memProviderRepo) GetByID(id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProviderRepo) Create(p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.providers[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memProviderRepo) Update(p *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p.ID]; !ok {
		return providerRepo.ErrNotFound
	}
	cp := *p
	r.providers[p.ID] = &cp
	return nil
}

func (r *memProviderRepo) GetEligible(serviceID, branchID string) ([]models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Provider
	for _, id := range r.order {
		p := r.providers[id]
		if !p.Available || !p.Active || !p.Verified || !p.Offers(serviceID) {
			continue
		}
		if branchID != "" && p.BranchID != branchID {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProviderRepo) SetAvailability(id string, available bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return false, providerRepo.ErrNotFound
	}
	if p.Available == available {
		return false, nil
	}
	p.Available = available
	return true, nil
}

func (r *memProviderRepo) IncrementCompleted(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.CompletedBookings++
	r.incremented[id]++
	return nil
}

func (r *memProviderRepo) UpdateLocation(id string, lat, lng float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return providerRepo.ErrNotFound
	}
	p.Latitude = &lat
	p.Longitude = &lng
	return nil
}

var _ providerRepo.ProviderRepository = (*memProviderRepo)(nil)

// stubBranchRepo serves a fixed branch list.
type stubBranchRepo struct {
	branches []models.Branch
}

func (r *stubBranchRepo) GetByID(id string) (*models.Branch, error) {
	for i := range r.branches {
		if r.branches[i].ID == id {
			return &r.branches[i], nil
		}
	}
	return nil, branchRepo.ErrNotFound
}

func (r *stubBranchRepo) GetActive() ([]models.Branch, error) {
	var out []models.Branch
	for _, b := range r.branches {
		if b.Active {
			out = append(out, b)
		}
	}
	return out, nil
}

var _ branchRepo.BranchRepository = (*stubBranchRepo)(nil)

// stubCatalogRepo serves a fixed service catalog.
type stubCatalogRepo struct {
	services []models.Service
}

func (r *stubCatalogRepo) GetServiceByID(id string) (*models.Service, error) {
	for i := range r.services {
		if r.services[i].ID == id {
			return &r.services[i], nil
		}
	}
	return nil, catalogRepo.ErrNotFound
}

func (r *stubCatalogRepo) GetActiveServices() ([]models.Service, error) {
	var out []models.Service
	for _, s := range r.services {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ catalogRepo.CatalogRepository = (*stubCatalogRepo)(nil)

// stubGeocoder resolves every address to fixed coordinates.
type stubGeocoder struct {
	result *geo.GeoResult
	err    error
}

func (g *stubGeocoder) Geocode(ctx context.Context, address, postalCode string) (*geo.GeoResult, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

// stubGateway records created orders and can be forced to fail.
type stubGateway struct {
	mu     sync.Mutex
	orders int
	fail   bool
}

func (g *stubGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fail {
		return "", fmt.Errorf("gateway unreachable")
	}
	g.orders++
	return fmt.Sprintf("order_%d", g.orders), nil
}

// recordingNotifier captures every notification text.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(ctx context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, text)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

// seqNumbers issues deterministic booking numbers and counts consumption.
type seqNumbers struct {
	mu   sync.Mutex
	next int
}

func (g *seqNumbers) Next(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("LS-20260829-%05d", g.next), nil
}

func (g *seqNumbers) issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next
}
