package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "finsight/internal/errors"
)

const (
	openAIBaseURL = "https://api.openai.com/v1/chat/completions"

	advisorSystemPrompt = "You are an AI financial advisor assistant. Provide helpful, " +
		"professional advice about financial planning, investments, and money management. " +
		"Keep responses clear, concise, and focused on financial topics."
)

// chatRequest is the OpenAI chat-completions request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the subset of the OpenAI chat-completions response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// chatService relays advisor conversations to the OpenAI chat-completions
// API with a fixed financial-advisor system prompt. It keeps no conversation
// state; the caller sends the full message history on every request.
type chatService struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string // overridable for tests
}

// NewChatService creates a new ChatServicer.
func NewChatService(httpClient *http.Client, apiKey, model string) ChatServicer {
	return &chatService{
		httpClient: httpClient,
		apiKey:     apiKey,
		model:      model,
		baseURL:    openAIBaseURL,
	}
}

// Complete sends the conversation to the completion API and returns the
// assistant's reply. There is a single error path (non-2xx status or a
// malformed body) and no retry.
func (s *chatService) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	if s.apiKey == "" {
		return "", apperrors.WithMessage(apperrors.ErrAdvisorUnavailable, "advisor chat is not configured")
	}
	if len(messages) == 0 {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one message is required")
	}

	payload := chatRequest{
		Model:       s.model,
		Messages:    append([]ChatMessage{{Role: "system", Content: advisorSystemPrompt}}, messages...),
		Temperature: 0.7,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnavailable, err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := fmt.Errorf("completion API returned status %d", resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			detail = fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, parsed.Error.Message)
		}
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnavailable, detail)
	}

	if len(parsed.Choices) == 0 {
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnavailable, fmt.Errorf("completion API returned no choices"))
	}

	return parsed.Choices[0].Message.Content, nil
}
