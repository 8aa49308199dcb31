package domain

// Venue is a candidate eating place returned by the venue search.
// Venues are transient: they live for a single search request and are
// discarded once the reply has been sent.
type Venue struct {
	ID             int64
	Name           string
	Type           string
	Cuisine        string
	Address        string
	DistanceMeters int
	Latitude       float64
	Longitude      float64
	Phone          string
	Website        string
	OpeningHours   string
	Description    string
}
