package output

import "golang-foodbot/internal/domain"

// SessionStore interface - Output port
// Defines what the application needs for persisting per-user dialogue state
// and the running conversation log. Implementations must be safe for
// concurrent access; per-user serialization of a whole handle() invocation
// is the dialogue service's responsibility.
type SessionStore interface {
	// GetSession retrieves the dialogue session for a user.
	// Returns nil (and no error) when the user has no session yet; callers
	// treat an absent session as a fresh IDLE one.
	// Returns an error only on storage access failure.
	GetSession(userID string) (*domain.ConversationSession, error)

	// SaveSession creates or replaces the session for session.UserID.
	// The store performs no merging: the caller is responsible for reading
	// prior criteria before writing. LastUpdated is refreshed on every save.
	SaveSession(session *domain.ConversationSession) error

	// ResetSession returns the user's session to IDLE, clearing criteria
	// and location. Resetting an absent session is not an error.
	ResetSession(userID string) error

	// AppendMessage appends one entry to the user's conversation log.
	AppendMessage(userID string, role domain.ChatMessageRole, content string) error

	// GetHistory returns the user's conversation log ordered ascending by
	// timestamp. An absent log yields an empty slice.
	GetHistory(userID string) ([]domain.ChatMessage, error)

	// DeleteSession removes the session and conversation log for a user.
	// This operation is idempotent.
	DeleteSession(userID string) error
}
