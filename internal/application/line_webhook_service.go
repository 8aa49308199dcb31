package application

import (
	"context"
	"fmt"

	"golang-foodbot/internal/domain"
	"golang-foodbot/internal/ports/input"
	"golang-foodbot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// LineWebhookService struct - Application service implementing LINE webhook use cases
type LineWebhookService struct {
	lineClient output.LineClient
	dialogue   input.DialogueService
	store      output.SessionStore
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient, dialogue input.DialogueService, store output.SessionStore) *LineWebhookService {
	return &LineWebhookService{
		lineClient: lineClient,
		dialogue:   dialogue,
		store:      store,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(request domain.LineWebhookRequest) error {
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, source=%s, userID=%s",
			event.Type, event.Source.Type, event.Source.UserID)

		switch event.Type {
		case domain.LineEventTypeMessage:
			if err := s.handleMessageEvent(event); err != nil {
				logrus.Errorf("Failed to handle message event: %v", err)
				return err
			}

		case domain.LineEventTypeFollow:
			if err := s.handleFollowEvent(event); err != nil {
				logrus.Errorf("Failed to handle follow event: %v", err)
				return err
			}

		case domain.LineEventTypeUnfollow:
			if err := s.handleUnfollowEvent(event); err != nil {
				logrus.Errorf("Failed to handle unfollow event: %v", err)
				return err
			}

		default:
			logrus.Infof("Unhandled event type: %s", event.Type)
		}
	}

	return nil
}

// handleMessageEvent - Routes text and location messages into the dialogue engine
func (s *LineWebhookService) handleMessageEvent(event domain.LineWebhookEvent) error {
	if event.Message == nil {
		return nil
	}

	ctx := context.Background()
	userID := event.Source.UserID

	var replyMessages []domain.OutgoingMessage

	switch event.Message.Type {
	case domain.LineMessageTypeText:
		replyMessages = s.dialogue.HandleText(ctx, userID, event.Message.Text)

	case domain.LineMessageTypeLocation:
		replyMessages = s.dialogue.HandleLocation(ctx, userID, event.Message.Latitude, event.Message.Longitude)

	default:
		logrus.Infof("Ignoring non-text message: type=%s", event.Message.Type)
		return nil
	}

	if len(replyMessages) > 0 && event.ReplyToken != "" {
		replyReq := domain.LineReplyMessageRequest{
			ReplyToken: event.ReplyToken,
			Messages:   replyMessages,
		}

		if _, err := s.lineClient.ReplyMessage(replyReq); err != nil {
			return fmt.Errorf("failed to send reply: %w", err)
		}
	}

	return nil
}

// handleFollowEvent - Fresh session plus welcome message for new friends
func (s *LineWebhookService) handleFollowEvent(event domain.LineWebhookEvent) error {
	logrus.Infof("User followed: userID=%s", event.Source.UserID)

	if err := s.store.ResetSession(event.Source.UserID); err != nil {
		logrus.Warnf("Failed to reset session on follow: %v", err)
	}

	welcomeMsg := domain.LinePushMessageRequest{
		To: event.Source.UserID,
		Messages: []domain.OutgoingMessage{
			{Text: welcomeMessageFormat, Affordance: domain.AffordanceNone},
		},
	}

	if _, err := s.lineClient.PushMessage(welcomeMsg); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}

	return nil
}

// handleUnfollowEvent - Drops the session and conversation log
func (s *LineWebhookService) handleUnfollowEvent(event domain.LineWebhookEvent) error {
	logrus.Infof("User unfollowed: userID=%s", event.Source.UserID)

	if err := s.store.DeleteSession(event.Source.UserID); err != nil {
		logrus.Warnf("Failed to delete session on unfollow: %v", err)
	}

	return nil
}
