package domain

import "time"

// ConversationState represents the slot-filling stage of a user's dialogue
type ConversationState string

const (
	// StateIdle - No food search in progress
	StateIdle ConversationState = "IDLE"
	// StateCollectingCriteria - Waiting for the user to provide food criteria
	StateCollectingCriteria ConversationState = "COLLECTING_CRITERIA"
	// StateConfirmingCriteria - Waiting for the user to confirm the collected criteria
	StateConfirmingCriteria ConversationState = "CONFIRMING_CRITERIA"
	// StateWaitingForLocation - Waiting for the user to share a location
	StateWaitingForLocation ConversationState = "WAITING_FOR_LOCATION"
	// StateProcessing - Searching venues for the confirmed criteria
	StateProcessing ConversationState = "PROCESSING"
	// StateSuggesting - Delivering venue suggestions
	StateSuggesting ConversationState = "SUGGESTING"
)

// IsValid reports whether s is a defined conversation state
func (s ConversationState) IsValid() bool {
	switch s {
	case StateIdle, StateCollectingCriteria, StateConfirmingCriteria,
		StateWaitingForLocation, StateProcessing, StateSuggesting:
		return true
	}
	return false
}

// ChatMessageRole represents who authored a chat message
type ChatMessageRole string

const (
	// ChatMessageRoleUser - Message authored by the user
	ChatMessageRoleUser ChatMessageRole = "user"
	// ChatMessageRoleBot - Message authored by the bot
	ChatMessageRoleBot ChatMessageRole = "bot"
)

// ChatMessage is one entry of a conversation log, ordered ascending by timestamp
type ChatMessage struct {
	Role      ChatMessageRole
	Content   string
	Timestamp time.Time
}

// Coordinates is a latitude/longitude pair shared by the user
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// ConversationSession holds the dialogue state for one LINE user.
// The session is owned exclusively by that user's conversation and is
// mutated only by the dialogue service.
type ConversationSession struct {
	UserID      string
	State       ConversationState
	Criteria    []string
	Location    *Coordinates
	LastUpdated time.Time
}

// NewConversationSession creates a fresh IDLE session for a user
func NewConversationSession(userID string) *ConversationSession {
	return &ConversationSession{
		UserID:      userID,
		State:       StateIdle,
		Criteria:    []string{},
		LastUpdated: time.Now(),
	}
}

// Reset returns the session to IDLE and clears criteria and location
func (s *ConversationSession) Reset() {
	s.State = StateIdle
	s.Criteria = []string{}
	s.Location = nil
	s.LastUpdated = time.Now()
}
