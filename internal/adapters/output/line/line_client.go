package line

import (
	"fmt"

	"golang-foodbot/internal/domain"
	"golang-foodbot/internal/ports/output"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure LineClientAdapter implements LineClient interface
var _ output.LineClient = (*LineClientAdapter)(nil)

// LineClientAdapter struct - Output adapter for LINE messaging platform.
// Renders the dialogue engine's reply affordances as LINE quick replies.
type LineClientAdapter struct {
	client *messaging_api.MessagingApiAPI
}

// NewLineClientAdapter func - Creates new LINE client adapter
func NewLineClientAdapter(channelToken string) (*LineClientAdapter, error) {
	client, err := messaging_api.NewMessagingApiAPI(channelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE messaging API client: %w", err)
	}

	return &LineClientAdapter{
		client: client,
	}, nil
}

// ReplyMessage - Sends reply messages to LINE user via reply token
func (a *LineClientAdapter) ReplyMessage(request domain.LineReplyMessageRequest) (*domain.LineMessageResponse, error) {
	messages := convertMessages(request.Messages)
	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}

	req := &messaging_api.ReplyMessageRequest{
		ReplyToken: request.ReplyToken,
		Messages:   messages,
	}

	_, err := a.client.ReplyMessage(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send reply message: %w", err)
	}

	logrus.Infof("Successfully sent reply message with token: %s", request.ReplyToken)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Reply sent",
	}, nil
}

// PushMessage - Sends push messages to LINE user directly
func (a *LineClientAdapter) PushMessage(request domain.LinePushMessageRequest) (*domain.LineMessageResponse, error) {
	messages := convertMessages(request.Messages)
	if len(messages) == 0 {
		return nil, fmt.Errorf("no valid messages to send")
	}

	req := &messaging_api.PushMessageRequest{
		To:       request.To,
		Messages: messages,
	}

	_, err := a.client.PushMessage(req, "")
	if err != nil {
		return nil, fmt.Errorf("failed to send push message: %w", err)
	}

	logrus.Infof("Successfully sent push message to: %s", request.To)

	return &domain.LineMessageResponse{
		Status:  "success",
		Message: "Push sent",
	}, nil
}

// convertMessages - Converts domain outgoing messages to LINE SDK messages
func convertMessages(messages []domain.OutgoingMessage) []messaging_api.MessageInterface {
	converted := make([]messaging_api.MessageInterface, 0, len(messages))
	for _, msg := range messages {
		if msg.Text == "" {
			logrus.Warn("Skipping outgoing message with empty text")
			continue
		}
		converted = append(converted, messaging_api.TextMessage{
			Text:       msg.Text,
			QuickReply: quickReplyFor(msg.Affordance),
		})
	}
	return converted
}

// quickReplyFor - Renders a reply affordance as LINE quick reply buttons
func quickReplyFor(affordance domain.ReplyAffordance) *messaging_api.QuickReply {
	switch affordance {
	case domain.AffordanceShareLocation:
		return &messaging_api.QuickReply{
			Items: []messaging_api.QuickReplyItem{
				{
					Type:   "action",
					Action: &messaging_api.LocationAction{Label: "Chia sẻ vị trí"},
				},
			},
		}

	case domain.AffordanceConfirmCancel:
		return &messaging_api.QuickReply{
			Items: []messaging_api.QuickReplyItem{
				{
					Type:   "action",
					Action: &messaging_api.MessageAction{Label: "Xác nhận", Text: "xác nhận"},
				},
				{
					Type:   "action",
					Action: &messaging_api.MessageAction{Label: "Hủy", Text: "hủy"},
				},
			},
		}

	default:
		return nil
	}
}
