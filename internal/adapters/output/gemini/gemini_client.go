package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang-foodbot/configs"
	"golang-foodbot/internal/domain"
	"golang-foodbot/internal/ports/output"

	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure GeminiClientAdapter implements ModelClient interface
var _ output.ModelClient = (*GeminiClientAdapter)(nil)

// GeminiClientAdapter struct - Output adapter for Gemini's OpenAI-compatible
// chat completions API. Every call is a single attempt with a bounded
// timeout: the dialogue engine treats each failure via a local fallback, so
// retrying here would only stall the conversation.
type GeminiClientAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// NewGeminiClientAdapter func - Creates new Gemini client adapter
func NewGeminiClientAdapter(config configs.Gemini) *GeminiClientAdapter {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	timeout := time.Duration(config.Timeout) * time.Second
	if config.Timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	adapter := &GeminiClientAdapter{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     config.APIKey,
		model:      config.Model,
	}

	logrus.Infof("Gemini client adapter initialized with base URL: %s, model: %s, timeout: %v", baseURL, config.Model, timeout)

	return adapter
}

// Complete sends one chat completion request and returns the generated text
func (a *GeminiClientAdapter) Complete(ctx context.Context, systemPrompt, userPrompt string, history []domain.ChatMessage) (string, error) {
	messages := make([]chatMessageAPI, 0, len(history)+2)
	messages = append(messages, chatMessageAPI{Role: "system", Content: systemPrompt})
	for _, msg := range history {
		role := "user"
		if msg.Role == domain.ChatMessageRoleBot {
			role = "assistant"
		}
		messages = append(messages, chatMessageAPI{Role: role, Content: msg.Content})
	}
	messages = append(messages, chatMessageAPI{Role: "user", Content: userPrompt})

	reqBody := chatCompletionAPIRequest{
		Model:    a.model,
		Messages: messages,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", a.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d - %s", domain.ErrInvalidRequest, resp.StatusCode, string(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d - %s", domain.ErrModelUnavailable, resp.StatusCode, string(body))
	}

	var apiResp chatCompletionAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("failed to parse chat completion response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", domain.ErrModelUnavailable)
	}

	content := apiResp.Choices[0].Message.Content

	logrus.Infof("Chat completion successful, model: %s, tokens: %d", apiResp.Model, apiResp.Usage.TotalTokens)

	return content, nil
}

// classifyTransportError maps transport failures onto domain sentinels
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrModelTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", domain.ErrModelTimeout, err)
	}

	return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
}

// API request/response shapes (OpenAI-compatible)

type chatMessageAPI struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionAPIRequest struct {
	Model    string           `json:"model"`
	Messages []chatMessageAPI `json:"messages"`
}

type chatCompletionAPIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}
