package memory

import (
	"sync"
	"time"

	"golang-foodbot/internal/domain"
	"golang-foodbot/internal/ports/output"
)

// Compile-time check to ensure MemorySessionStore implements SessionStore interface
var _ output.SessionStore = (*MemorySessionStore)(nil)

// MemorySessionStore struct - Output adapter for in-memory session storage.
// Guards its maps with a single RWMutex; per-user serialization of a whole
// dialogue turn is layered on top by the dialogue service.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.ConversationSession
	history  map[string][]domain.ChatMessage
}

// NewMemorySessionStore creates a new in-memory session store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]*domain.ConversationSession),
		history:  make(map[string][]domain.ChatMessage),
	}
}

// GetSession retrieves the session for a user, or nil when absent.
// A copy is returned so callers cannot mutate stored state without SaveSession.
func (m *MemorySessionStore) GetSession(userID string) (*domain.ConversationSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return nil, nil
	}

	copied := *session
	copied.Criteria = append([]string(nil), session.Criteria...)
	if session.Location != nil {
		loc := *session.Location
		copied.Location = &loc
	}
	return &copied, nil
}

// SaveSession creates or replaces the session for session.UserID
func (m *MemorySessionStore) SaveSession(session *domain.ConversationSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *session
	copied.Criteria = append([]string(nil), session.Criteria...)
	if session.Location != nil {
		loc := *session.Location
		copied.Location = &loc
	}
	copied.LastUpdated = time.Now()
	m.sessions[session.UserID] = &copied

	return nil
}

// ResetSession returns the user's session to IDLE with cleared criteria and
// location. Resetting an absent session creates a fresh IDLE one.
func (m *MemorySessionStore) ResetSession(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = domain.NewConversationSession(userID)
	return nil
}

// AppendMessage appends one entry to the user's conversation log
func (m *MemorySessionStore) AppendMessage(userID string, role domain.ChatMessageRole, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history[userID] = append(m.history[userID], domain.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	return nil
}

// GetHistory returns the user's conversation log ordered ascending by timestamp
func (m *MemorySessionStore) GetHistory(userID string) ([]domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	messages := m.history[userID]
	copied := make([]domain.ChatMessage, len(messages))
	copy(copied, messages)
	return copied, nil
}

// DeleteSession removes the session and conversation log for a user.
// This operation is idempotent.
func (m *MemorySessionStore) DeleteSession(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	delete(m.history, userID)
	return nil
}
