package postgres

import (
	"testing"

	"golang-foodbot/internal/domain"
)

// TestToRecordSerializesSession tests the session -> row mapping used by
// SaveSession and ResetSession
func TestToRecordSerializesSession(t *testing.T) {
	session := domain.NewConversationSession("U1234567890abcdef")
	session.State = domain.StateWaitingForLocation
	session.Criteria = []string{"cay", "hải sản"}
	session.Location = &domain.Coordinates{Latitude: 10.77, Longitude: 106.69}

	record, err := toRecord(session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.UserID != "U1234567890abcdef" {
		t.Errorf("expected user id carried over, got %q", record.UserID)
	}
	if record.CurrentState != string(domain.StateWaitingForLocation) {
		t.Errorf("expected state WAITING_FOR_LOCATION, got %q", record.CurrentState)
	}
	if record.Criteria == nil || *record.Criteria != `["cay","hải sản"]` {
		t.Errorf("expected criteria encoded as JSON, got %v", record.Criteria)
	}
	if record.Latitude == nil || *record.Latitude != 10.77 || record.Longitude == nil || *record.Longitude != 106.69 {
		t.Errorf("expected coordinates carried over, got %v %v", record.Latitude, record.Longitude)
	}
	if record.LastUpdated == nil || record.LastUpdated.IsZero() {
		t.Error("expected LastUpdated set on serialization")
	}
}

// TestToRecordOmitsEmptyCriteriaAndLocation tests that a fresh session maps
// to NULL criteria and coordinates
func TestToRecordOmitsEmptyCriteriaAndLocation(t *testing.T) {
	record, err := toRecord(domain.NewConversationSession("U1234567890abcdef"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.CurrentState != string(domain.StateIdle) {
		t.Errorf("expected IDLE for a fresh session, got %q", record.CurrentState)
	}
	if record.Criteria != nil {
		t.Errorf("expected nil criteria for an empty list, got %v", *record.Criteria)
	}
	if record.Latitude != nil || record.Longitude != nil {
		t.Error("expected nil coordinates without a location")
	}
}
