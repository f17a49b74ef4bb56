package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrUnresolvable is returned when neither the full address nor the
// postal-code fallback produced coordinates.
var ErrUnresolvable = errors.New("address could not be resolved")

// GeoResult is a resolved coordinate pair with the city extracted from the
// geocoder's display name when present.
type GeoResult struct {
	Latitude  float64
	Longitude float64
	City      string
}

// Geocoder resolves free-text addresses to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address, postalCode string) (*GeoResult, error)
}

// NominatimGeocoder resolves addresses against an OpenStreetMap Nominatim
// instance. It tries the full address first and falls back to a
// postal-code-only query before giving up.
type NominatimGeocoder struct {
	baseURL string
	country string
	client  *http.Client
	logger  *zap.Logger
}

func NewNominatimGeocoder(baseURL, country string, timeout time.Duration, logger *zap.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address, postalCode string) (*GeoResult, error) {
	query := strings.TrimSpace(address)
	if query == "" {
		return nil, ErrUnresolvable
	}

	result, err := g.search(ctx, url.Values{
		"q":            []string{query},
		"format":       []string{"json"},
		"limit":        []string{"1"},
		"countrycodes": []string{g.country},
	})
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, ErrUnresolvable) {
		return nil, err
	}

	// Full address failed; retry with the postal code alone.
	g.logger.Warn("geocode fallback to postal code",
		zap.String("address", address), zap.String("postal_code", postalCode))
	return g.search(ctx, url.Values{
		"postalcode":   []string{strings.TrimSpace(postalCode)},
		"format":       []string{"json"},
		"limit":        []string{"1"},
		"countrycodes": []string{g.country},
	})
}

func (g *NominatimGeocoder) search(ctx context.Context, params url.Values) (*GeoResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("User-Agent", "localserve/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding service returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrUnresolvable
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	return &GeoResult{
		Latitude:  lat,
		Longitude: lng,
		City:      extractCity(results[0].DisplayName),
	}, nil
}

// extractCity pulls a city-ish token out of a Nominatim display name, a
// comma-separated chain from most to least specific ending in state and
// country. Postal codes in the chain are skipped.
func extractCity(displayName string) string {
	var parts []string
	for _, p := range strings.Split(displayName, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, err := strconv.Atoi(p); err == nil {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) >= 3 {
		return parts[len(parts)-3]
	}
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}
