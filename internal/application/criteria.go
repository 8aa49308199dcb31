package application

import (
	"context"
	"fmt"
	"strings"

	"golang-foodbot/internal/domain"

	"github.com/sirupsen/logrus"
)

// Free-text classification and extraction helpers. Every model call here has
// a local fallback: a failure of the text-generation service must never stall
// the dialogue.

// parseLines splits a model response into trimmed, non-empty lines
func parseLines(response string) []string {
	lines := strings.Split(response, "\n")
	parsed := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			parsed = append(parsed, line)
		}
	}
	return parsed
}

// isFoodRequest classifies whether text asks for a food or venue suggestion.
// Falls back to keyword containment when the model call fails.
func (s *DialogueService) isFoodRequest(ctx context.Context, text string) bool {
	userPrompt := fmt.Sprintf(intentUserPromptFormat, text)

	response, err := s.model.Complete(ctx, intentSystemPrompt, userPrompt, nil)
	if err != nil {
		logrus.Warnf("Intent detection via model failed, using keyword fallback: %v", err)
		return containsAnyKeyword(text, foodIntentKeywords)
	}

	return strings.Contains(strings.ToLower(strings.TrimSpace(response)), "yes")
}

// isConfirmation classifies whether text affirms the proposed criteria list.
// Falls back to keyword containment when the model call fails.
func (s *DialogueService) isConfirmation(ctx context.Context, text string) bool {
	userPrompt := fmt.Sprintf(confirmUserPromptFormat, text)

	response, err := s.model.Complete(ctx, confirmSystemPrompt, userPrompt, nil)
	if err != nil {
		logrus.Warnf("Confirmation detection via model failed, using keyword fallback: %v", err)
		return containsAnyKeyword(text, confirmationKeywords)
	}

	return strings.Contains(strings.ToLower(strings.TrimSpace(response)), "yes")
}

// containsAnyKeyword reports whether text contains any of the keywords,
// case-insensitively
func containsAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// extractCriteria pulls food criteria out of a user message. The model is
// asked first; when it errs or returns nothing, the bootstrap keyword table
// is scanned; when that also yields nothing, the whole trimmed message is
// treated as a single literal criterion. The result is never empty for
// non-empty input.
func (s *DialogueService) extractCriteria(ctx context.Context, text string) []string {
	userPrompt := fmt.Sprintf(extractCriteriaUserPromptFormat, text)

	response, err := s.model.Complete(ctx, extractCriteriaSystemPrompt, userPrompt, nil)
	if err != nil {
		logrus.Warnf("Criterion extraction via model failed, using keyword fallback: %v", err)
	} else if extracted := parseLines(response); len(extracted) > 0 {
		return extracted
	}

	if found := scanKnownCriteria(text); len(found) > 0 {
		return found
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	return []string{trimmed}
}

// scanKnownCriteria matches the bootstrap criteria table against the message
func scanKnownCriteria(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, 4)
	for _, criterion := range commonCriteria {
		if strings.Contains(lower, strings.ToLower(criterion)) {
			found = append(found, criterion)
		}
	}
	return found
}

// suggestCriteria asks the model for up to max additional criteria the user
// has not picked yet, falling back to unused entries of the bootstrap table.
// Suggestions are only displayed; they are never stored until the user
// repeats them.
func (s *DialogueService) suggestCriteria(ctx context.Context, userID string, current []string, max int) []string {
	history, err := s.store.GetHistory(userID)
	if err != nil {
		logrus.Warnf("Failed to load history for criteria suggestions: %v", err)
		history = nil
	}

	userPrompt := fmt.Sprintf(suggestCriteriaUserPromptFormat, strings.Join(current, ", "), max)

	response, err := s.model.Complete(ctx, suggestCriteriaSystemPrompt, userPrompt, history)
	if err != nil {
		logrus.Warnf("Criteria suggestion via model failed, using static fallback: %v", err)
		return staticCriteriaSuggestions(current, max)
	}

	suggestions := make([]string, 0, max)
	for _, line := range parseLines(response) {
		if domain.ContainsCriterion(current, line) || domain.ContainsCriterion(suggestions, line) {
			continue
		}
		suggestions = append(suggestions, domain.NormalizeCriterion(line))
		if len(suggestions) >= max {
			break
		}
	}

	if len(suggestions) == 0 {
		return staticCriteriaSuggestions(current, max)
	}
	return suggestions
}

// staticCriteriaSuggestions returns the first max bootstrap criteria not
// already picked
func staticCriteriaSuggestions(current []string, max int) []string {
	suggestions := make([]string, 0, max)
	for _, criterion := range commonCriteria {
		if domain.ContainsCriterion(current, criterion) {
			continue
		}
		suggestions = append(suggestions, criterion)
		if len(suggestions) >= max {
			break
		}
	}
	return suggestions
}

// formatCriteriaConfirmation renders the confirmation prompt. suggestions are
// appended to the displayed list only - they are not part of the stored
// criteria until the user mentions them.
func formatCriteriaConfirmation(criteria, suggestions []string) string {
	if len(criteria) == 0 {
		return noCriteriaMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tiêu chí bạn đã chọn: %s\n", strings.Join(criteria, ", "))
	if len(suggestions) > 0 {
		fmt.Fprintf(&b, "Bạn có thể quan tâm thêm: %s\n", strings.Join(suggestions, ", "))
	}
	b.WriteString("Bạn có muốn thêm tiêu chí nào khác không? Nếu không, hãy gõ 'xác nhận' để tiếp tục.")
	return b.String()
}
