package models

import "time"

// Provider is a field technician who fulfills assigned bookings.
//
// Latitude/Longitude are pointers because a provider may never have reported
// a location; assignment ranking falls back to pool order for such providers.
type Provider struct {
	ID        string   `bson:"id" json:"id"`
	Name      string   `bson:"name" json:"name"`
	Phone     string   `bson:"phone" json:"phone"`
	BranchID  string   `bson:"branch_id,omitempty" json:"branch_id,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`

	// Eligibility flags. Available is flipped by the assignment engine and by
	// the provider's own accept/decline; Active and Verified belong to admin
	// tooling.
	Available bool `bson:"available" json:"available"`
	Active    bool `bson:"active" json:"active"`
	Verified  bool `bson:"verified" json:"verified"`

	ServicesOffered   []string  `bson:"services_offered" json:"services_offered"`
	CompletedBookings int       `bson:"completed_bookings" json:"completed_bookings"`
	Rating            float64   `bson:"rating" json:"rating"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}

// Offers reports whether the provider is qualified for the given service.
func (p *Provider) Offers(serviceID string) bool {
	for _, s := range p.ServicesOffered {
		if s == serviceID {
			return true
		}
	}
	return false
}

// HasLocation reports whether the provider has reported coordinates.
func (p *Provider) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}
