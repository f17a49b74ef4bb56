package providerRepo

import (
	"errors"

	"localserve/models"
)

// ErrNotFound is returned when no provider matches the given id.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository defines data access for field providers.
type ProviderRepository interface {
	GetByID(id string) (*models.Provider, error)
	Create(p *models.Provider) error
	Update(p *models.Provider) error

	// GetEligible returns providers that are available, active, verified and
	// qualified for the service, preserving insertion order. branchID narrows
	// the pool to a branch when non-empty.
	GetEligible(serviceID, branchID string) ([]models.Provider, error)

	// SetAvailability conditionally flips the availability flag; returns
	// false when the provider was already in the requested state.
	SetAvailability(id string, available bool) (bool, error)

	// IncrementCompleted bumps the provider's completed/assigned counter.
	IncrementCompleted(id string) error

	// UpdateLocation stores the provider's last reported coordinates.
	UpdateLocation(id string, lat, lng float64) error
}
