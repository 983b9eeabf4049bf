package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shoepao-backend/internal/models"
)

type conversationStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	Touch(ctx context.Context, id uuid.UUID) error
}

type messageStore interface {
	Create(ctx context.Context, m *models.Message) error
	List(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error)
}

type completer interface {
	Complete(ctx context.Context, history []models.ChatMessage) (string, error)
}

// ChatService drives one chat turn: validate, persist the user message,
// assemble history, call the completion service, persist the reply.
type ChatService struct {
	conversations conversationStore
	messages      messageStore
	completion    completer
}

func NewChatService(conversations conversationStore, messages messageStore, completion completer) *ChatService {
	return &ChatService{
		conversations: conversations,
		messages:      messages,
		completion:    completion,
	}
}

// Send runs a single turn on the given conversation.
//
// The user message is persisted as soon as the input validates, before the
// completion call. A failed completion therefore still leaves the user's
// text in the conversation history; there is no compensating rollback and
// no retry. The conversation's updated_at is only refreshed on full success.
func (s *ChatService) Send(ctx context.Context, conversationID uuid.UUID, content string) (*models.ChatResult, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Fields: map[string]string{"content": "Message content is required"}}
	}

	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "Conversation not found"}
		}
		return nil, err
	}

	userMessage := &models.Message{
		ConversationID: conversation.ID,
		Content:        content,
		Role:           models.RoleUser,
	}
	if err := s.messages.Create(ctx, userMessage); err != nil {
		return nil, err
	}

	history, err := s.messages.List(ctx, conversation.ID)
	if err != nil {
		return nil, err
	}

	reply, err := s.completion.Complete(ctx, AssembleHistory(history))
	if err != nil {
		return nil, err
	}

	assistantMessage := &models.Message{
		ConversationID: conversation.ID,
		Content:        reply,
		Role:           models.RoleAssistant,
	}
	if err := s.messages.Create(ctx, assistantMessage); err != nil {
		return nil, err
	}

	if err := s.conversations.Touch(ctx, conversation.ID); err != nil {
		return nil, err
	}

	return &models.ChatResult{
		ConversationID:   conversation.ID,
		UserMessage:      userMessage,
		AssistantMessage: assistantMessage,
	}, nil
}
