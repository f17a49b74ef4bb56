package assignment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "localserve/database/repository/booking"
	providerRepo "localserve/database/repository/provider"
	"localserve/models"
	"localserve/services/geo"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Engine selects providers for bookings. AutoAssign mutates the booking and
// the provider; ManualAssign only validates and returns the provider, and the
// admin surface owns the mutation in that path. Keep the asymmetry: collapsing
// the two invites double-mutation bugs.
type Engine interface {
	FindEligibleProvider(ctx context.Context, serviceID string, lat, lng float64, branchID string) (*models.Provider, error)
	AutoAssign(ctx context.Context, booking *models.Booking) (*models.Provider, error)
	ManualAssign(ctx context.Context, bookingID, providerID string) (*models.Provider, error)
}

const poolCacheTTL = 30 * time.Second

// DefaultAssignmentEngine is the production implementation.
type DefaultAssignmentEngine struct {
	Providers   providerRepo.ProviderRepository
	Bookings    bookingRepo.BookingRepository
	CacheClient *redis.Client
	Logger      *zap.Logger
}

// FindEligibleProvider filters the pool to available+active+verified
// providers offering the service (optionally at the branch), then picks the
// one nearest to the booking location. Ties keep pool order; providers
// without coordinates lose to any located provider, and if nobody has
// coordinates the first eligible provider wins.
func (e *DefaultAssignmentEngine) FindEligibleProvider(ctx context.Context, serviceID string, lat, lng float64, branchID string) (*models.Provider, error) {
	pool, err := e.eligiblePool(ctx, serviceID, branchID)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, ErrNoEligibleProvider
	}

	var chosen *models.Provider
	best := 0.0
	for i := range pool {
		p := &pool[i]
		if !p.HasLocation() {
			continue
		}
		d := geo.Distance(lat, lng, *p.Latitude, *p.Longitude)
		if chosen == nil || d < best {
			chosen = p
			best = d
		}
	}
	if chosen == nil {
		// No eligible provider has reported a location.
		chosen = &pool[0]
	}
	return chosen, nil
}

// AutoAssign runs the full system-side assignment: pick a provider, move the
// booking to assigned under the transition guard, then bump the provider's
// counter. The booking write happens first so a provider is never mutated for
// a booking that still shows unassigned.
func (e *DefaultAssignmentEngine) AutoAssign(ctx context.Context, booking *models.Booking) (*models.Provider, error) {
	if !models.CanTransition(booking.Status, models.BookingAssigned) {
		return nil, &AssignError{Code: "invalidState", Message: fmt.Sprintf("booking %s cannot be assigned from status %s", booking.ID, booking.Status)}
	}

	provider, err := e.FindEligibleProvider(ctx, booking.ServiceID, booking.Latitude, booking.Longitude, booking.BranchID)
	if err != nil {
		return nil, err
	}

	// Re-check the authoritative record; the pool may have come from cache.
	fresh, err := e.Providers.GetByID(provider.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to re-check provider %s: %w", provider.ID, err)
	}
	if !fresh.Available || !fresh.Active || !fresh.Verified {
		e.invalidatePool(ctx, booking.ServiceID, booking.BranchID)
		return nil, ErrNoEligibleProvider
	}

	ok, err := e.Bookings.AssignProvider(booking.ID, fresh.ID, booking.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to persist assignment: %w", err)
	}
	if !ok {
		// A concurrent actor already moved the booking on.
		return nil, &AssignError{Code: "conflict", Message: fmt.Sprintf("booking %s changed state during assignment", booking.ID)}
	}
	booking.ProviderID = fresh.ID
	booking.Status = models.BookingAssigned

	if err := e.Providers.IncrementCompleted(fresh.ID); err != nil {
		// The assignment stands; the counter is best-effort bookkeeping.
		e.Logger.Error("failed to increment provider booking counter",
			zap.String("provider_id", fresh.ID), zap.Error(err))
	}
	return fresh, nil
}

// ManualAssign validates that the booking exists and the provider is
// available and active. It deliberately skips the service-match and
// verification checks: manual assignment trusts admin judgement. No mutation
// happens here; the caller applies the status transition and persists.
func (e *DefaultAssignmentEngine) ManualAssign(ctx context.Context, bookingID, providerID string) (*models.Provider, error) {
	if _, err := e.Bookings.GetByID(bookingID); err != nil {
		return nil, err
	}
	provider, err := e.Providers.GetByID(providerID)
	if err != nil {
		return nil, err
	}
	if !provider.Available || !provider.Active {
		return nil, ErrProviderUnavailable
	}
	return provider, nil
}

func poolCacheKey(serviceID, branchID string) string {
	return fmt.Sprintf("assign:pool:%s:%s", serviceID, branchID)
}

// eligiblePool returns the eligible provider pool, served from a short-TTL
// Redis cache when possible.
func (e *DefaultAssignmentEngine) eligiblePool(ctx context.Context, serviceID, branchID string) ([]models.Provider, error) {
	key := poolCacheKey(serviceID, branchID)
	if e.CacheClient != nil {
		if cached, err := e.CacheClient.Get(ctx, key).Result(); err == nil && cached != "" {
			var pool []models.Provider
			if err := json.Unmarshal([]byte(cached), &pool); err == nil {
				return pool, nil
			}
		}
	}

	pool, err := e.Providers.GetEligible(serviceID, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible providers: %w", err)
	}

	if e.CacheClient != nil && len(pool) > 0 {
		if data, err := json.Marshal(pool); err == nil {
			e.CacheClient.Set(ctx, key, data, poolCacheTTL)
		}
	}
	return pool, nil
}

func (e *DefaultAssignmentEngine) invalidatePool(ctx context.Context, serviceID, branchID string) {
	if e.CacheClient != nil {
		e.CacheClient.Del(ctx, poolCacheKey(serviceID, branchID))
	}
}
