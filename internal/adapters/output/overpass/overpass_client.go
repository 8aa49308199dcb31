package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang-foodbot/configs"
	"golang-foodbot/internal/domain"
	"golang-foodbot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure OverpassClientAdapter implements VenueSearch interface
var _ output.VenueSearch = (*OverpassClientAdapter)(nil)

// OverpassClientAdapter struct - Output adapter querying OpenStreetMap's
// Overpass API for eating venues around a coordinate. Term filtering is
// best-effort substring matching against the venue's descriptive tags.
type OverpassClientAdapter struct {
	httpClient *http.Client
	apiURL     string
}

const defaultAPIURL = "https://overpass-api.de/api/interpreter"

// Terms that make café results relevant; cafés are otherwise dropped when
// the user filters by criteria.
var coffeeTerms = []string{"cafe", "cà phê", "coffee"}

// NewOverpassClientAdapter func - Creates new Overpass client adapter
func NewOverpassClientAdapter(config configs.Search) *OverpassClientAdapter {
	apiURL := config.OverpassURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 20 * time.Second
	}

	logrus.Infof("Overpass client adapter initialized with URL: %s, timeout: %v", apiURL, timeout)

	return &OverpassClientAdapter{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
	}
}

// Search returns eating venues within radiusMeters of the coordinates,
// sorted ascending by distance. An empty result is not an error.
func (a *OverpassClientAdapter) Search(ctx context.Context, lat, lon float64, radiusMeters int, terms []string) ([]domain.Venue, error) {
	query := buildQuery(lat, lon, radiusMeters)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create overpass request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("overpass request failed: status %d", resp.StatusCode)
	}

	var body overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to parse overpass response: %w", err)
	}

	venues := make([]domain.Venue, 0, len(body.Elements))
	for _, element := range body.Elements {
		venue, ok := toVenue(element, lat, lon)
		if !ok {
			continue
		}
		if !matchesTerms(venue, terms) {
			continue
		}
		venues = append(venues, venue)
	}

	sort.Slice(venues, func(i, j int) bool {
		return venues[i].DistanceMeters < venues[j].DistanceMeters
	})

	logrus.Infof("Overpass search at (%.5f, %.5f) radius %dm returned %d venues", lat, lon, radiusMeters, len(venues))

	return venues, nil
}

// buildQuery assembles the Overpass QL for eating venues around a point
func buildQuery(lat, lon float64, radius int) string {
	var b strings.Builder
	b.WriteString("[out:json];\n(\n")
	for _, amenity := range []string{"restaurant", "cafe", "fast_food", "food_court"} {
		fmt.Fprintf(&b, "  node[\"amenity\"=\"%s\"](around:%d,%f,%f);\n", amenity, radius, lat, lon)
		fmt.Fprintf(&b, "  way[\"amenity\"=\"%s\"](around:%d,%f,%f);\n", amenity, radius, lat, lon)
	}
	fmt.Fprintf(&b, "  node[\"cuisine\"](around:%d,%f,%f);\n", radius, lat, lon)
	fmt.Fprintf(&b, "  way[\"cuisine\"](around:%d,%f,%f);\n", radius, lat, lon)
	b.WriteString(");\nout center;\n")
	return b.String()
}

// toVenue converts one Overpass element, dropping unnamed or uncoordinated ones
func toVenue(element overpassElement, originLat, originLon float64) (domain.Venue, bool) {
	name := element.Tags["name"]
	if name == "" {
		return domain.Venue{}, false
	}

	lat, lon := element.Lat, element.Lon
	if lat == 0 && lon == 0 && element.Center != nil {
		lat, lon = element.Center.Lat, element.Center.Lon
	}
	if lat == 0 && lon == 0 {
		return domain.Venue{}, false
	}

	address := element.Tags["addr:full"]
	if address == "" {
		address = element.Tags["addr:street"]
	}

	venueType := element.Tags["amenity"]
	if venueType == "" {
		venueType = "restaurant"
	}

	return domain.Venue{
		ID:             element.ID,
		Name:           name,
		Type:           venueType,
		Cuisine:        element.Tags["cuisine"],
		Address:        address,
		DistanceMeters: int(math.Round(haversineMeters(originLat, originLon, lat, lon))),
		Latitude:       lat,
		Longitude:      lon,
		Phone:          element.Tags["phone"],
		Website:        element.Tags["website"],
		OpeningHours:   element.Tags["opening_hours"],
		Description:    element.Tags["description"],
	}, true
}

// matchesTerms applies the best-effort term filter. With no terms everything
// passes. Cafés need an explicit coffee-ish term; other venues need any term
// to appear in one of the descriptive fields.
func matchesTerms(venue domain.Venue, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	if venue.Type == "cafe" && !anyTermIn(terms, coffeeTerms) {
		return false
	}

	haystack := strings.ToLower(strings.Join([]string{
		venue.Name, venue.Type, venue.Cuisine, venue.Description,
	}, " "))

	for _, term := range terms {
		if strings.Contains(haystack, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

// anyTermIn reports whether any term equals one of the wanted values,
// case-insensitively
func anyTermIn(terms, wanted []string) bool {
	for _, term := range terms {
		lower := strings.ToLower(term)
		for _, w := range wanted {
			if lower == w {
				return true
			}
		}
	}
	return false
}

// haversineMeters computes the great-circle distance between two coordinates
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusMeters = 6371000.0

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Overpass API response shapes

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	Type   string            `json:"type"`
	ID     int64             `json:"id"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
