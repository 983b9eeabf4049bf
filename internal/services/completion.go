package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"shoepao-backend/internal/models"
)

// CompletionConfig carries everything the adapter needs. Injected
// explicitly at construction; no global lookups.
type CompletionConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// chatCompleter is the slice of the OpenAI client the service uses.
// *openai.Client satisfies it; tests substitute a stub.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type CompletionService struct {
	client      chatCompleter
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewCompletionService fails fast with a ConfigurationError when no API
// key is available, so a misconfigured deployment never accepts a turn.
func NewCompletionService(cfg CompletionConfig) (*CompletionService, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Message: "OpenAI API key not configured"}
	}

	return &CompletionService{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
	}, nil
}

// Complete sends the assembled history and returns exactly one
// assistant reply, or a CompletionError. No retries here.
func (s *CompletionService) Complete(ctx context.Context, history []models.ChatMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, len(history))
	for i, m := range history {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", &CompletionError{Message: fmt.Sprintf("completion request failed: %v", err)}
	}

	if len(resp.Choices) == 0 {
		return "", &CompletionError{Message: "completion response contained no choices"}
	}

	reply := resp.Choices[0].Message.Content
	if strings.TrimSpace(reply) == "" {
		return "", &CompletionError{Message: "completion response contained no content"}
	}

	return reply, nil
}
