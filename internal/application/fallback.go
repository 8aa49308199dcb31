package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang-foodbot/internal/domain"

	"github.com/sirupsen/logrus"
)

// Fallback classifier. Maps caught failures and empty results to one of a
// fixed set of user-facing recovery messages. This component never fails:
// whatever goes wrong inside it, the generic apology literal comes back. The
// caller resets the session to IDLE after delivering the message, which
// keeps the dialogue live.

// classifyFailure turns an error from any collaborator into a recovery reply
func (s *DialogueService) classifyFailure(ctx context.Context, err error, criteria []string) domain.OutgoingMessage {
	switch {
	case err == nil:
		return domain.OutgoingMessage{Text: genericApologyMessage, Affordance: domain.AffordanceNone}

	case errors.Is(err, domain.ErrNoVenues):
		if len(criteria) > 0 {
			return domain.OutgoingMessage{Text: s.noVenuesReply(ctx, criteria), Affordance: domain.AffordanceNone}
		}
		return domain.OutgoingMessage{Text: criteriaReminderMessage, Affordance: domain.AffordanceNone}

	case errors.Is(err, domain.ErrNoLocation):
		return domain.OutgoingMessage{Text: locationReminderMessage, Affordance: domain.AffordanceShareLocation}

	case errors.Is(err, domain.ErrNoCriteria):
		return domain.OutgoingMessage{Text: criteriaReminderMessage, Affordance: domain.AffordanceNone}

	case isConnectivityError(err):
		return domain.OutgoingMessage{Text: serviceUnavailableMessage, Affordance: domain.AffordanceNone}

	default:
		return domain.OutgoingMessage{Text: genericApologyMessage, Affordance: domain.AffordanceNone}
	}
}

// isConnectivityError matches transient transport failures from any collaborator
func isConnectivityError(err error) bool {
	if errors.Is(err, domain.ErrModelUnavailable) ||
		errors.Is(err, domain.ErrModelTimeout) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") || strings.Contains(msg, "connection")
}

// noVenuesReply synthesizes dish suggestions when the search found nothing.
// The model generates the dishes; if that call also fails, a static popular
// dishes literal is used instead.
func (s *DialogueService) noVenuesReply(ctx context.Context, criteria []string) string {
	header := fmt.Sprintf(`Tôi không thể tìm thấy quán ăn nào gần vị trí của bạn dựa trên tiêu chí (%s).

Tuy nhiên, tôi có thể gợi ý một số món ăn phù hợp với tiêu chí của bạn:

`, strings.Join(criteria, ", "))

	userPrompt := fmt.Sprintf(suggestFoodsUserPromptFormat, strings.Join(criteria, ", "), defaultVenueLimit)

	suggestions, err := s.model.Complete(ctx, suggestFoodsSystemPrompt, userPrompt, nil)
	if err != nil || strings.TrimSpace(suggestions) == "" {
		logrus.Warnf("Dish suggestion via model failed, using static fallback: %v", err)
		return popularDishesMessage
	}

	return header + strings.TrimSpace(suggestions) + "\n\n" + closingHint
}
