package domain

import "errors"

var (
	// ErrModelUnavailable indicates the text-generation service is unreachable
	ErrModelUnavailable = errors.New("model service unavailable")

	// ErrModelTimeout indicates a request to the text-generation service timed out
	ErrModelTimeout = errors.New("model request timeout")

	// ErrInvalidRequest indicates an invalid request was made (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoVenues indicates the venue search returned no results at any radius
	ErrNoVenues = errors.New("no venues found")

	// ErrNoCriteria indicates an operation required criteria the user has not provided
	ErrNoCriteria = errors.New("no criteria provided")

	// ErrNoLocation indicates an operation required a location the user has not shared
	ErrNoLocation = errors.New("no location provided")
)
