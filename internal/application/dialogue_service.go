package application

import (
	"context"
	"strings"
	"sync"

	"golang-foodbot/internal/domain"
	"golang-foodbot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// DialogueService struct - Application service implementing the slot-filling
// dialogue use cases. It owns the per-user conversation lifecycle: free-text
// signals from the text-generation service (intent, criteria, confirmation -
// all unreliable) drive deterministic state transitions, and every failure of
// a collaborator degrades into a fallback reply plus a reset to IDLE. No code
// path leaves a session unresponsive.
type DialogueService struct {
	store  output.SessionStore
	model  output.ModelClient
	search output.VenueSearch

	// One mutex per user: all reads and writes of a user's session during a
	// single handle invocation form one atomic region. Different users never
	// contend.
	userLocks sync.Map
}

// NewDialogueService func - Creates new dialogue service
func NewDialogueService(store output.SessionStore, model output.ModelClient, search output.VenueSearch) *DialogueService {
	return &DialogueService{
		store:  store,
		model:  model,
		search: search,
	}
}

// lockUser serializes handling for one user and returns the unlock func
func (s *DialogueService) lockUser(userID string) func() {
	value, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// loadSession reads the user's session, defaulting an absent one to IDLE
func (s *DialogueService) loadSession(userID string) (*domain.ConversationSession, error) {
	session, err := s.store.GetSession(userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = domain.NewConversationSession(userID)
	}
	return session, nil
}

// recoverFrom produces the fallback reply for err and forces the session
// back to IDLE so the next message starts from a defined state
func (s *DialogueService) recoverFrom(ctx context.Context, userID string, err error, criteria []string) []domain.OutgoingMessage {
	logrus.Errorf("Dialogue handling failed for user %s: %v", userID, err)

	msg := s.classifyFailure(ctx, err, criteria)

	if resetErr := s.store.ResetSession(userID); resetErr != nil {
		logrus.Errorf("Failed to reset session for user %s: %v", userID, resetErr)
	}

	return []domain.OutgoingMessage{msg}
}

// logReplies appends outgoing messages to the user's conversation log
func (s *DialogueService) logReplies(userID string, messages []domain.OutgoingMessage) {
	for _, msg := range messages {
		if err := s.store.AppendMessage(userID, domain.ChatMessageRoleBot, msg.Text); err != nil {
			logrus.Warnf("Failed to log bot message for user %s: %v", userID, err)
		}
	}
}

// HandleText processes one text message from a user. It always returns at
// least one outgoing message and always leaves the session in a defined
// state.
func (s *DialogueService) HandleText(ctx context.Context, userID, text string) []domain.OutgoingMessage {
	unlock := s.lockUser(userID)
	defer unlock()

	if err := s.store.AppendMessage(userID, domain.ChatMessageRoleUser, text); err != nil {
		logrus.Warnf("Failed to log user message for user %s: %v", userID, err)
	}

	replies := s.handleTextLocked(ctx, userID, text)
	s.logReplies(userID, replies)
	return replies
}

func (s *DialogueService) handleTextLocked(ctx context.Context, userID, text string) []domain.OutgoingMessage {
	session, err := s.loadSession(userID)
	if err != nil {
		return s.recoverFrom(ctx, userID, err, nil)
	}

	trimmed := strings.TrimSpace(text)

	// Command routing mirrors the transport-level commands.
	switch strings.ToLower(trimmed) {
	case "/start":
		return s.resetLocked(ctx, userID, welcomeMessageFormat)
	case "/help":
		return []domain.OutgoingMessage{{Text: helpMessage, Affordance: domain.AffordanceNone}}
	case "/reset":
		return s.resetLocked(ctx, userID, resetMessage)
	}

	// Cancel keyword aborts the flow from any non-IDLE state.
	if session.State != domain.StateIdle && strings.EqualFold(trimmed, cancelKeyword) {
		return s.resetLocked(ctx, userID, resetMessage)
	}

	if !session.State.IsValid() {
		// Defect in the store or the machine itself; recover to IDLE anyway.
		logrus.Errorf("Session for user %s has invalid state %q", userID, session.State)
		return s.recoverFrom(ctx, userID, domain.ErrInvalidRequest, nil)
	}

	switch session.State {
	case domain.StateCollectingCriteria:
		return s.handleCollecting(ctx, session, trimmed)

	case domain.StateConfirmingCriteria:
		return s.handleConfirming(ctx, session, trimmed)

	case domain.StateWaitingForLocation:
		return []domain.OutgoingMessage{{Text: locationReminderMessage, Affordance: domain.AffordanceShareLocation}}

	default:
		// IDLE, and the transient PROCESSING/SUGGESTING states a crashed
		// search may have left behind.
		return s.handleIdle(ctx, session, trimmed)
	}
}

// handleIdle either opens the food flow or answers as a general assistant
func (s *DialogueService) handleIdle(ctx context.Context, session *domain.ConversationSession, text string) []domain.OutgoingMessage {
	if !s.isFoodRequest(ctx, text) {
		return s.generalReply(ctx, session.UserID, text)
	}

	extracted := s.extractCriteriaForRequest(ctx, text)
	if len(extracted) == 0 {
		session.State = domain.StateCollectingCriteria
		session.Criteria = []string{}
		if err := s.store.SaveSession(session); err != nil {
			return s.recoverFrom(ctx, session.UserID, err, nil)
		}
		return []domain.OutgoingMessage{{Text: collectCriteriaPrompt, Affordance: domain.AffordanceNone}}
	}

	session.State = domain.StateConfirmingCriteria
	session.Criteria = domain.MergeCriteria(nil, extracted)
	if err := s.store.SaveSession(session); err != nil {
		return s.recoverFrom(ctx, session.UserID, err, session.Criteria)
	}

	return []domain.OutgoingMessage{{
		Text:       formatCriteriaConfirmation(session.Criteria, nil),
		Affordance: domain.AffordanceConfirmCancel,
	}}
}

// extractCriteriaForRequest extracts criteria from the opening food request.
// The opening message is a question ("tôi muốn ăn gì đó"), not necessarily a
// criteria list, so the whole-message literal fallback is not applied here;
// an empty result routes the user to explicit criteria collection.
func (s *DialogueService) extractCriteriaForRequest(ctx context.Context, text string) []string {
	extracted := s.extractCriteria(ctx, text)
	if len(extracted) == 1 && strings.EqualFold(extracted[0], strings.TrimSpace(text)) {
		// Literal fallback fired: the message itself is no criterion.
		if len(scanKnownCriteria(text)) == 0 {
			return nil
		}
	}
	return extracted
}

// handleCollecting merges extracted criteria and moves to confirmation
func (s *DialogueService) handleCollecting(ctx context.Context, session *domain.ConversationSession, text string) []domain.OutgoingMessage {
	extracted := s.extractCriteria(ctx, text)
	session.Criteria = domain.MergeCriteria(session.Criteria, extracted)
	session.State = domain.StateConfirmingCriteria
	if err := s.store.SaveSession(session); err != nil {
		return s.recoverFrom(ctx, session.UserID, err, session.Criteria)
	}

	// Sparse lists get up to two displayed-only suggestions.
	var suggestions []string
	if len(session.Criteria) < 3 {
		suggestions = s.suggestCriteria(ctx, session.UserID, session.Criteria, 2)
	}

	return []domain.OutgoingMessage{{
		Text:       formatCriteriaConfirmation(session.Criteria, suggestions),
		Affordance: domain.AffordanceConfirmCancel,
	}}
}

// handleConfirming either advances to location collection or keeps merging
func (s *DialogueService) handleConfirming(ctx context.Context, session *domain.ConversationSession, text string) []domain.OutgoingMessage {
	if s.isConfirmation(ctx, text) {
		if len(session.Criteria) == 0 {
			// Nothing to confirm; stay put and re-prompt.
			return []domain.OutgoingMessage{{Text: noCriteriaMessage, Affordance: domain.AffordanceNone}}
		}

		session.State = domain.StateWaitingForLocation
		if err := s.store.SaveSession(session); err != nil {
			return s.recoverFrom(ctx, session.UserID, err, session.Criteria)
		}
		return []domain.OutgoingMessage{{Text: locationRequestMessage, Affordance: domain.AffordanceShareLocation}}
	}

	extracted := s.extractCriteria(ctx, text)
	session.Criteria = domain.MergeCriteria(session.Criteria, extracted)
	if err := s.store.SaveSession(session); err != nil {
		return s.recoverFrom(ctx, session.UserID, err, session.Criteria)
	}

	return []domain.OutgoingMessage{{
		Text:       formatCriteriaConfirmation(session.Criteria, nil),
		Affordance: domain.AffordanceConfirmCancel,
	}}
}

// generalReply answers a non-food message using the conversation history
func (s *DialogueService) generalReply(ctx context.Context, userID, text string) []domain.OutgoingMessage {
	history, err := s.store.GetHistory(userID)
	if err != nil {
		logrus.Warnf("Failed to load history for general reply: %v", err)
		history = nil
	}

	response, err := s.model.Complete(ctx, generalSystemPrompt, text, history)
	if err != nil {
		return s.recoverFrom(ctx, userID, err, nil)
	}

	return []domain.OutgoingMessage{{Text: strings.TrimSpace(response), Affordance: domain.AffordanceNone}}
}

// HandleLocation processes a shared location. In WAITING_FOR_LOCATION it
// runs the synchronous PROCESSING -> SUGGESTING -> IDLE chain: search, rank,
// reply, reset. In any other state the location is politely acknowledged.
func (s *DialogueService) HandleLocation(ctx context.Context, userID string, lat, lon float64) []domain.OutgoingMessage {
	unlock := s.lockUser(userID)
	defer unlock()

	replies := s.handleLocationLocked(ctx, userID, lat, lon)
	s.logReplies(userID, replies)
	return replies
}

func (s *DialogueService) handleLocationLocked(ctx context.Context, userID string, lat, lon float64) []domain.OutgoingMessage {
	session, err := s.loadSession(userID)
	if err != nil {
		return s.recoverFrom(ctx, userID, err, nil)
	}

	if session.State != domain.StateWaitingForLocation {
		return []domain.OutgoingMessage{{Text: unexpectedLocationMessage, Affordance: domain.AffordanceNone}}
	}

	criteria := session.Criteria
	session.State = domain.StateProcessing
	session.Location = &domain.Coordinates{Latitude: lat, Longitude: lon}
	if err := s.store.SaveSession(session); err != nil {
		return s.recoverFrom(ctx, userID, err, criteria)
	}

	notice := domain.OutgoingMessage{Text: processingMessage, Affordance: domain.AffordanceNone}

	venues, err := s.findTopVenues(ctx, *session.Location, criteria, defaultVenueLimit)
	if err != nil {
		// ErrNoVenues becomes generated dish suggestions; anything else a
		// canned recovery. Either way the session lands in IDLE.
		return append([]domain.OutgoingMessage{notice}, s.recoverFrom(ctx, userID, err, criteria)...)
	}

	session.State = domain.StateSuggesting
	if err := s.store.SaveSession(session); err != nil {
		logrus.Errorf("Failed to persist SUGGESTING state for user %s: %v", userID, err)
	}

	result := domain.OutgoingMessage{Text: formatVenueResults(venues, criteria), Affordance: domain.AffordanceNone}

	if err := s.store.ResetSession(userID); err != nil {
		logrus.Errorf("Failed to reset session after suggesting for user %s: %v", userID, err)
	}

	return []domain.OutgoingMessage{notice, result}
}

func (s *DialogueService) resetLocked(ctx context.Context, userID, acknowledgement string) []domain.OutgoingMessage {
	if err := s.store.ResetSession(userID); err != nil {
		return s.recoverFrom(ctx, userID, err, nil)
	}
	return []domain.OutgoingMessage{{Text: acknowledgement, Affordance: domain.AffordanceNone}}
}
