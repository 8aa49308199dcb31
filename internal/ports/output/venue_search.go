package output

import (
	"context"

	"golang-foodbot/internal/domain"
)

// VenueSearch interface - Output port
// Defines what the application needs from the geographic venue search.
type VenueSearch interface {
	// Search returns eating venues within radiusMeters of the coordinates,
	// sorted ascending by distance. terms are best-effort filter hints
	// matched as substrings against name/cuisine/description fields; the
	// search never guarantees exact filtering. An empty result is not an
	// error.
	Search(ctx context.Context, lat, lon float64, radiusMeters int, terms []string) ([]domain.Venue, error)
}
