package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang-foodbot/internal/domain"

	"github.com/sirupsen/logrus"
)

// Venue search and ranking orchestration. The search radius escalates once
// when the initial query comes back empty; ranking is a quality enhancement
// that degrades to the distance-sorted order on any failure.

const (
	initialSearchRadius = 1000
	maxSearchRadius     = 5000
	defaultVenueLimit   = 3
)

// findTopVenues returns up to limit venues near the location, best match
// first. Returns domain.ErrNoVenues when both radii come back empty.
func (s *DialogueService) findTopVenues(ctx context.Context, loc domain.Coordinates, criteria []string, limit int) ([]domain.Venue, error) {
	venues, err := s.search.Search(ctx, loc.Latitude, loc.Longitude, initialSearchRadius, criteria)
	if err != nil {
		return nil, fmt.Errorf("venue search failed: %w", err)
	}

	// Single escalation, never a third query.
	if len(venues) == 0 && len(criteria) > 0 && initialSearchRadius < maxSearchRadius {
		logrus.Infof("No venues within %dm, widening search to %dm", initialSearchRadius, maxSearchRadius)
		venues, err = s.search.Search(ctx, loc.Latitude, loc.Longitude, maxSearchRadius, criteria)
		if err != nil {
			return nil, fmt.Errorf("widened venue search failed: %w", err)
		}
	}

	if len(venues) == 0 {
		return nil, domain.ErrNoVenues
	}

	if len(venues) > 1 {
		venues = s.rankVenues(ctx, venues, criteria)
	}

	if len(venues) > limit {
		venues = venues[:limit]
	}
	return venues, nil
}

// rankVenues asks the model to order venues by fit against the criteria.
// Any failure returns the input order unchanged - ranking never becomes a
// hard dependency.
func (s *DialogueService) rankVenues(ctx context.Context, venues []domain.Venue, criteria []string) []domain.Venue {
	var listing strings.Builder
	for i, v := range venues {
		fmt.Fprintf(&listing, "ID %d: %s", i, v.Name)
		if v.Cuisine != "" {
			fmt.Fprintf(&listing, " (%s)", v.Cuisine)
		}
		if v.Description != "" {
			fmt.Fprintf(&listing, " - %s", v.Description)
		}
		fmt.Fprintf(&listing, ", cách %dm\n", v.DistanceMeters)
	}

	userPrompt := fmt.Sprintf(rankVenuesUserPromptFormat, listing.String(), strings.Join(criteria, ", "))

	response, err := s.model.Complete(ctx, rankVenuesSystemPrompt, userPrompt, nil)
	if err != nil {
		logrus.Warnf("Venue ranking via model failed, keeping distance order: %v", err)
		return venues
	}

	order := parseRankingResponse(response, len(venues))
	ranked := make([]domain.Venue, 0, len(venues))
	for _, id := range order {
		ranked = append(ranked, venues[id])
	}
	return ranked
}

// parseRankingResponse turns a free-text ranking into a total permutation of
// 0..n-1. Per line, non-digit characters are stripped; unparseable lines,
// out-of-range ids and duplicates are discarded. Ids the model never
// mentioned are appended afterward in original order, so the result is a
// valid permutation no matter how malformed the response is.
func parseRankingResponse(response string, n int) []int {
	order := make([]int, 0, n)
	seen := make(map[int]bool, n)

	for _, line := range strings.Split(response, "\n") {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, line)
		if digits == "" {
			continue
		}

		id, err := strconv.Atoi(digits)
		if err != nil || id < 0 || id >= n || seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}

	for id := 0; id < n; id++ {
		if !seen[id] {
			order = append(order, id)
		}
	}
	return order
}

// formatVenueResults renders the top venues as a numbered reply
func formatVenueResults(venues []domain.Venue, criteria []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dựa trên tiêu chí của bạn (%s), đây là top %d quán ăn gần bạn:\n\n",
		strings.Join(criteria, ", "), len(venues))

	for i, venue := range venues {
		fmt.Fprintf(&b, "#%d: %s\n\n", i+1, formatVenueInfo(venue))
	}

	b.WriteString(closingHint)
	return b.String()
}

// formatVenueInfo renders one venue, skipping fields the source left empty
func formatVenueInfo(v domain.Venue) string {
	parts := []string{v.Name}
	if v.Cuisine != "" {
		parts = append(parts, fmt.Sprintf("Loại: %s", v.Cuisine))
	}
	if v.Address != "" {
		parts = append(parts, fmt.Sprintf("Địa chỉ: %s", v.Address))
	}
	if v.DistanceMeters > 0 {
		parts = append(parts, fmt.Sprintf("Khoảng cách: %dm", v.DistanceMeters))
	}
	if v.Phone != "" {
		parts = append(parts, fmt.Sprintf("Điện thoại: %s", v.Phone))
	}
	if v.Website != "" {
		parts = append(parts, fmt.Sprintf("Website: %s", v.Website))
	}
	if v.OpeningHours != "" {
		parts = append(parts, fmt.Sprintf("Giờ mở cửa: %s", v.OpeningHours))
	}
	if v.Description != "" {
		parts = append(parts, fmt.Sprintf("Mô tả: %s", v.Description))
	}
	return strings.Join(parts, "\n")
}
