// Package geo holds the pure geospatial pricing rules: great-circle distance,
// nearest-branch search, distance-tier surcharges and service-area checks.
// Tier boundaries and metro postal ranges are injected, never hardcoded.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"localserve/models"
)

// PostalRange is an inclusive range of numeric postal codes.
type PostalRange struct {
	Low  int
	High int
}

// PricingConfig carries the tier boundaries (km, inclusive upper bounds) and
// the metro postal ranges within which long-distance bookings stay
// serviceable.
type PricingConfig struct {
	NearTierKm    float64
	MidTierKm     float64
	FarTierKm     float64
	MidTierCharge float64
	FarTierCharge float64
	MetroRanges   []PostalRange
}

// ParseMetroRanges parses a comma-separated list of PIN ranges, e.g.
// "302001-302039,303001-303008". A bare code like "302001" is a
// single-element range.
func ParseMetroRanges(s string) ([]PostalRange, error) {
	var ranges []PostalRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		low, high, found := strings.Cut(part, "-")
		lo, err := strconv.Atoi(strings.TrimSpace(low))
		if err != nil {
			return nil, fmt.Errorf("invalid postal range %q: %w", part, err)
		}
		hi := lo
		if found {
			hi, err = strconv.Atoi(strings.TrimSpace(high))
			if err != nil {
				return nil, fmt.Errorf("invalid postal range %q: %w", part, err)
			}
		}
		if hi < lo {
			return nil, fmt.Errorf("invalid postal range %q: upper bound below lower", part)
		}
		ranges = append(ranges, PostalRange{Low: lo, High: hi})
	}
	return ranges, nil
}

// Engine evaluates distances and distance-based pricing. It is stateless and
// safe for concurrent use.
type Engine struct {
	cfg PricingConfig
}

func NewEngine(cfg PricingConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Distance calculates the great-circle (haversine) distance in km between
// two lat/lng points, rounded to 2 decimal places.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(R*c*100) / 100
}

// NearestBranch scans candidates linearly and returns the closest one with
// its distance. Strict less-than comparison keeps the first branch on ties,
// so the result is deterministic in input order. Returns nil when candidates
// is empty.
func (e *Engine) NearestBranch(candidates []models.Branch, lat, lng float64) (*models.Branch, float64) {
	var nearest *models.Branch
	best := math.MaxFloat64
	for i := range candidates {
		d := Distance(lat, lng, candidates[i].Latitude, candidates[i].Longitude)
		if d < best {
			best = d
			nearest = &candidates[i]
		}
	}
	if nearest == nil {
		return nil, 0
	}
	return nearest, best
}

// Surcharge returns the distance surcharge for a booking and whether service
// is possible at all. Beyond the far tier, only metro addresses remain
// serviceable (at the far-tier charge).
func (e *Engine) Surcharge(distanceKm float64, inMetro bool) (amount float64, available bool) {
	switch {
	case distanceKm <= e.cfg.NearTierKm:
		return 0, true
	case distanceKm <= e.cfg.MidTierKm:
		return e.cfg.MidTierCharge, true
	case distanceKm <= e.cfg.FarTierKm:
		return e.cfg.FarTierCharge, true
	case inMetro:
		return e.cfg.FarTierCharge, true
	default:
		return 0, false
	}
}

// InServiceMetro tests a postal code against the configured metro ranges.
// Non-numeric codes are never in the metro.
func (e *Engine) InServiceMetro(postalCode string) bool {
	code, err := strconv.Atoi(strings.TrimSpace(postalCode))
	if err != nil {
		return false
	}
	for _, r := range e.cfg.MetroRanges {
		if code >= r.Low && code <= r.High {
			return true
		}
	}
	return false
}

// Availability is the outcome of a serviceability check.
type Availability struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// ServiceAvailability decides whether an address at the given distance can be
// served. It derives from the same tier boundaries as Surcharge, so the two
// can never disagree.
func (e *Engine) ServiceAvailability(distanceKm float64, postalCode string) Availability {
	if distanceKm <= e.cfg.FarTierKm {
		return Availability{Available: true}
	}
	if e.InServiceMetro(postalCode) {
		return Availability{Available: true, Reason: "long-distance surcharge applies"}
	}
	return Availability{Available: false, Reason: "address is outside our service area"}
}
