package application

import (
	"context"
	"errors"
	"testing"

	"golang-foodbot/internal/domain"
)

// MockLineClient implements output.LineClient for testing
type MockLineClient struct {
	ReplyMessageFunc func(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error)
	PushMessageFunc  func(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error)

	// Captured values for assertions
	ReplyRequests []domain.LineReplyMessageRequest
	PushRequests  []domain.LinePushMessageRequest
}

func (m *MockLineClient) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	m.ReplyRequests = append(m.ReplyRequests, request)
	if m.ReplyMessageFunc != nil {
		return m.ReplyMessageFunc(request)
	}
	return &domain.LineMessageResponse{}, nil
}

func (m *MockLineClient) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	m.PushRequests = append(m.PushRequests, request)
	if m.PushMessageFunc != nil {
		return m.PushMessageFunc(request)
	}
	return &domain.LineMessageResponse{}, nil
}

// MockDialogueService implements input.DialogueService for testing
type MockDialogueService struct {
	HandleTextFunc     func(ctx context.Context, userID, text string) []domain.OutgoingMessage
	HandleLocationFunc func(ctx context.Context, userID string, lat, lon float64) []domain.OutgoingMessage

	TextCalls     []string
	LocationCalls []domain.Coordinates
}

func (m *MockDialogueService) HandleText(ctx context.Context, userID, text string) []domain.OutgoingMessage {
	m.TextCalls = append(m.TextCalls, text)
	if m.HandleTextFunc != nil {
		return m.HandleTextFunc(ctx, userID, text)
	}
	return []domain.OutgoingMessage{{Text: "ok"}}
}

func (m *MockDialogueService) HandleLocation(ctx context.Context, userID string, lat, lon float64) []domain.OutgoingMessage {
	m.LocationCalls = append(m.LocationCalls, domain.Coordinates{Latitude: lat, Longitude: lon})
	if m.HandleLocationFunc != nil {
		return m.HandleLocationFunc(ctx, userID, lat, lon)
	}
	return []domain.OutgoingMessage{{Text: "ok"}}
}

func textMessageEvent(userID, text string) domain.LineWebhookEvent {
	return domain.LineWebhookEvent{
		Type:       domain.LineEventTypeMessage,
		ReplyToken: "reply-token-123",
		Source:     domain.LineSource{Type: domain.LineSourceTypeUser, UserID: userID},
		Message:    &domain.LineMessage{ID: "msg-1", Type: domain.LineMessageTypeText, Text: text},
	}
}

// TestHandleWebhookRoutesTextMessages tests that a text event reaches the
// dialogue engine and its replies go back with the reply token
func TestHandleWebhookRoutesTextMessages(t *testing.T) {
	lineClient := &MockLineClient{}
	dialogue := &MockDialogueService{
		HandleTextFunc: func(ctx context.Context, userID, text string) []domain.OutgoingMessage {
			return []domain.OutgoingMessage{{Text: "Chào bạn!", Affordance: domain.AffordanceNone}}
		},
	}
	service := NewLineWebhookService(lineClient, dialogue, newMockSessionStore())

	request := domain.LineWebhookRequest{
		Events: []domain.LineWebhookEvent{textMessageEvent(testUserID, "xin chào")},
	}

	if err := service.HandleWebhook(request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dialogue.TextCalls) != 1 || dialogue.TextCalls[0] != "xin chào" {
		t.Errorf("expected the text routed to the dialogue engine, got %v", dialogue.TextCalls)
	}
	if len(lineClient.ReplyRequests) != 1 {
		t.Fatalf("expected 1 reply, got %d", len(lineClient.ReplyRequests))
	}
	reply := lineClient.ReplyRequests[0]
	if reply.ReplyToken != "reply-token-123" {
		t.Errorf("expected the event's reply token, got %q", reply.ReplyToken)
	}
	if len(reply.Messages) != 1 || reply.Messages[0].Text != "Chào bạn!" {
		t.Errorf("expected the dialogue reply forwarded, got %v", reply.Messages)
	}
}

// TestHandleWebhookRoutesLocationMessages tests the location message path
func TestHandleWebhookRoutesLocationMessages(t *testing.T) {
	lineClient := &MockLineClient{}
	dialogue := &MockDialogueService{}
	service := NewLineWebhookService(lineClient, dialogue, newMockSessionStore())

	request := domain.LineWebhookRequest{
		Events: []domain.LineWebhookEvent{{
			Type:       domain.LineEventTypeMessage,
			ReplyToken: "reply-token-456",
			Source:     domain.LineSource{Type: domain.LineSourceTypeUser, UserID: testUserID},
			Message: &domain.LineMessage{
				ID:        "msg-2",
				Type:      domain.LineMessageTypeLocation,
				Latitude:  10.77,
				Longitude: 106.69,
			},
		}},
	}

	if err := service.HandleWebhook(request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dialogue.LocationCalls) != 1 {
		t.Fatalf("expected 1 location call, got %d", len(dialogue.LocationCalls))
	}
	if dialogue.LocationCalls[0].Latitude != 10.77 || dialogue.LocationCalls[0].Longitude != 106.69 {
		t.Errorf("expected the coordinates forwarded, got %+v", dialogue.LocationCalls[0])
	}
	if len(lineClient.ReplyRequests) != 1 {
		t.Errorf("expected 1 reply, got %d", len(lineClient.ReplyRequests))
	}
}

// TestHandleWebhookIgnoresUnsupportedMessageTypes tests that stickers and
// other message kinds are dropped without a reply
func TestHandleWebhookIgnoresUnsupportedMessageTypes(t *testing.T) {
	lineClient := &MockLineClient{}
	dialogue := &MockDialogueService{}
	service := NewLineWebhookService(lineClient, dialogue, newMockSessionStore())

	request := domain.LineWebhookRequest{
		Events: []domain.LineWebhookEvent{{
			Type:       domain.LineEventTypeMessage,
			ReplyToken: "reply-token-789",
			Source:     domain.LineSource{Type: domain.LineSourceTypeUser, UserID: testUserID},
			Message:    &domain.LineMessage{ID: "msg-3", Type: domain.LineMessageTypeSticker},
		}},
	}

	if err := service.HandleWebhook(request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dialogue.TextCalls)+len(dialogue.LocationCalls) != 0 {
		t.Error("expected unsupported messages not to reach the dialogue engine")
	}
	if len(lineClient.ReplyRequests) != 0 {
		t.Errorf("expected no reply, got %d", len(lineClient.ReplyRequests))
	}
}

// TestHandleWebhookFollowEventSendsWelcome tests the follow path: fresh
// session plus a pushed welcome message
func TestHandleWebhookFollowEventSendsWelcome(t *testing.T) {
	lineClient := &MockLineClient{}
	store := newMockSessionStore()
	seedSession(store, testUserID, domain.StateConfirmingCriteria, []string{"cay"})
	service := NewLineWebhookService(lineClient, &MockDialogueService{}, store)

	request := domain.LineWebhookRequest{
		Events: []domain.LineWebhookEvent{{
			Type:   domain.LineEventTypeFollow,
			Source: domain.LineSource{Type: domain.LineSourceTypeUser, UserID: testUserID},
		}},
	}

	if err := service.HandleWebhook(request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if state := stateOf(t, store, testUserID); state != domain.StateIdle {
		t.Errorf("expected a fresh IDLE session on follow, got %s", state)
	}
	if len(lineClient.PushRequests) != 1 || lineClient.PushRequests[0].To != testUserID {
		t.Fatalf("expected a welcome push to the user, got %v", lineClient.PushRequests)
	}
}

// TestHandleWebhookUnfollowEventDeletesSession tests cleanup on unfollow
func TestHandleWebhookUnfollowEventDeletesSession(t *testing.T) {
	store := newMockSessionStore()
	seedSession(store, testUserID, domain.StateConfirmingCriteria, []string{"cay"})
	store.History[testUserID] = []domain.ChatMessage{{Role: domain.ChatMessageRoleUser, Content: "xin chào"}}
	service := NewLineWebhookService(&MockLineClient{}, &MockDialogueService{}, store)

	request := domain.LineWebhookRequest{
		Events: []domain.LineWebhookEvent{{
			Type:   domain.LineEventTypeUnfollow,
			Source: domain.LineSource{Type: domain.LineSourceTypeUser, UserID: testUserID},
		}},
	}

	if err := service.HandleWebhook(request); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, exists := store.Sessions[testUserID]; exists {
		t.Error("expected the session deleted on unfollow")
	}
	if len(store.History[testUserID]) != 0 {
		t.Error("expected the conversation log deleted on unfollow")
	}
}

// TestHandleWebhookReplyFailurePropagates tests that a failing reply call
// surfaces to the transport layer
func TestHandleWebhookReplyFailurePropagates(t *testing.T) {
	lineClient := &MockLineClient{
		ReplyMessageFunc: func(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
			return nil, errors.New("invalid reply token")
		},
	}
	service := NewLineWebhookService(lineClient, &MockDialogueService{}, newMockSessionStore())

	request := domain.LineWebhookRequest{
		Events: []domain.LineWebhookEvent{textMessageEvent(testUserID, "xin chào")},
	}

	if err := service.HandleWebhook(request); err == nil {
		t.Fatal("expected the reply failure to propagate")
	}
}
