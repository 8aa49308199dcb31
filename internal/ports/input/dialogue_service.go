package input

import (
	"context"

	"golang-foodbot/internal/domain"
)

// DialogueService interface - Input port (use case)
// The dialogue engine consumes one user event at a time and always produces
// at least one outgoing message; it never returns an error. Collaborator
// failures are converted into fallback replies and the session is reset to
// IDLE, so the user never receives silence.
type DialogueService interface {
	// HandleText processes a text message from the user.
	HandleText(ctx context.Context, userID, text string) []domain.OutgoingMessage

	// HandleLocation processes a shared location from the user.
	HandleLocation(ctx context.Context, userID string, lat, lon float64) []domain.OutgoingMessage
}
