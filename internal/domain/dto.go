package domain

// DTOs (Data Transfer Objects) - Domain layer request/response structures

// ReplyAffordance describes which reply control the transport should offer
// alongside an outgoing message. The dialogue engine decides which affordance
// is semantically required for the current state; rendering it (quick reply
// buttons, keyboards) is the transport adapter's responsibility.
type ReplyAffordance string

const (
	// AffordanceNone - Plain text reply, no control
	AffordanceNone ReplyAffordance = "none"
	// AffordanceShareLocation - Offer a location-share control
	AffordanceShareLocation ReplyAffordance = "share-location"
	// AffordanceConfirmCancel - Offer confirm/cancel controls
	AffordanceConfirmCancel ReplyAffordance = "confirm-or-cancel"
)

type (
	// OutgoingMessage struct - One bot reply produced by the dialogue engine
	OutgoingMessage struct {
		Text       string
		Affordance ReplyAffordance
	}

	// LineWebhookRequest struct - Domain LINE webhook request DTO
	LineWebhookRequest struct {
		Events []LineWebhookEvent
	}

	// LineReplyMessageRequest struct - Domain LINE reply message request DTO
	LineReplyMessageRequest struct {
		ReplyToken string
		Messages   []OutgoingMessage
	}

	// LinePushMessageRequest struct - Domain LINE push message request DTO
	LinePushMessageRequest struct {
		To       string
		Messages []OutgoingMessage
	}

	// LineMessageResponse struct - Domain LINE API response DTO
	LineMessageResponse struct {
		Status  string
		Message string
	}
)
