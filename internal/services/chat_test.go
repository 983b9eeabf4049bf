package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shoepao-backend/internal/models"
)

type stubConversationStore struct {
	conversation *models.Conversation
	touched      bool
}

func (s *stubConversationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	if s.conversation == nil || s.conversation.ID != id {
		return nil, pgx.ErrNoRows
	}
	return s.conversation, nil
}

func (s *stubConversationStore) Touch(ctx context.Context, id uuid.UUID) error {
	s.touched = true
	return nil
}

type stubMessageStore struct {
	existing  []*models.Message
	created   []*models.Message
	createErr error
}

func (s *stubMessageStore) Create(ctx context.Context, m *models.Message) error {
	if s.createErr != nil {
		return s.createErr
	}
	m.ID = uuid.New()
	m.Seq = int64(len(s.existing) + len(s.created) + 1)
	m.CreatedAt = time.Now()
	s.created = append(s.created, m)
	return nil
}

func (s *stubMessageStore) List(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	all := append([]*models.Message{}, s.existing...)
	return append(all, s.created...), nil
}

type stubCompleter struct {
	reply      string
	err        error
	gotHistory []models.ChatMessage
	calls      int
}

func (s *stubCompleter) Complete(ctx context.Context, history []models.ChatMessage) (string, error) {
	s.calls++
	s.gotHistory = history
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestConversation() *models.Conversation {
	return &models.Conversation{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()}
}

func TestChatService_Send_Success(t *testing.T) {
	conversation := newTestConversation()
	conversations := &stubConversationStore{conversation: conversation}
	messages := &stubMessageStore{}
	completion := &stubCompleter{reply: "We make steamed buns that look like sneakers. Sole-food!"}

	svc := NewChatService(conversations, messages, completion)
	result, err := svc.Send(context.Background(), conversation.ID, "What is Shoepao?")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(messages.created) != 2 {
		t.Fatalf("Expected exactly 2 persisted messages, got %d", len(messages.created))
	}
	if messages.created[0].Role != models.RoleUser || messages.created[0].Content != "What is Shoepao?" {
		t.Errorf("First persisted message should be the user turn, got %+v", messages.created[0])
	}
	if messages.created[1].Role != models.RoleAssistant || messages.created[1].Content == "" {
		t.Errorf("Second persisted message should be a non-empty assistant turn, got %+v", messages.created[1])
	}
	if !conversations.touched {
		t.Error("Expected conversation timestamp refresh on success")
	}

	if result.ConversationID != conversation.ID {
		t.Errorf("Expected conversation ID %s, got %s", conversation.ID, result.ConversationID)
	}
	if result.UserMessage != messages.created[0] || result.AssistantMessage != messages.created[1] {
		t.Error("Result should pair the persisted user and assistant messages")
	}
}

func TestChatService_Send_EmptyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"tabs and newlines", "\t\n "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conversation := newTestConversation()
			conversations := &stubConversationStore{conversation: conversation}
			messages := &stubMessageStore{}
			completion := &stubCompleter{reply: "ignored"}

			svc := NewChatService(conversations, messages, completion)
			_, err := svc.Send(context.Background(), conversation.ID, tc.content)

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if len(messages.created) != 0 {
				t.Errorf("Expected zero persisted messages, got %d", len(messages.created))
			}
			if completion.calls != 0 {
				t.Error("Completion should not be called for invalid input")
			}
			if conversations.touched {
				t.Error("Conversation timestamp must not change for invalid input")
			}
		})
	}
}

func TestChatService_Send_UnknownConversation(t *testing.T) {
	conversations := &stubConversationStore{}
	messages := &stubMessageStore{}
	completion := &stubCompleter{reply: "ignored"}

	svc := NewChatService(conversations, messages, completion)
	_, err := svc.Send(context.Background(), uuid.New(), "hello")

	var notFoundErr *NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if len(messages.created) != 0 {
		t.Errorf("Expected zero persisted messages, got %d", len(messages.created))
	}
}

func TestChatService_Send_CompletionFailureKeepsUserMessage(t *testing.T) {
	conversation := newTestConversation()
	conversations := &stubConversationStore{conversation: conversation}
	messages := &stubMessageStore{}
	completion := &stubCompleter{err: &CompletionError{Message: "completion request failed: network down"}}

	svc := NewChatService(conversations, messages, completion)
	_, err := svc.Send(context.Background(), conversation.ID, "What is Shoepao?")

	var completionErr *CompletionError
	if !errors.As(err, &completionErr) {
		t.Fatalf("Expected CompletionError, got %v", err)
	}
	if len(messages.created) != 1 {
		t.Fatalf("Expected exactly the user message persisted, got %d messages", len(messages.created))
	}
	if messages.created[0].Role != models.RoleUser {
		t.Errorf("Surviving message should be the user turn, got role %q", messages.created[0].Role)
	}
	if conversations.touched {
		t.Error("Conversation timestamp must not change on completion failure")
	}
}

func TestChatService_Send_AssemblesFullHistory(t *testing.T) {
	conversation := newTestConversation()
	conversations := &stubConversationStore{conversation: conversation}
	messages := &stubMessageStore{
		existing: []*models.Message{
			{ID: uuid.New(), ConversationID: conversation.ID, Role: models.RoleUser, Content: "hi"},
			{ID: uuid.New(), ConversationID: conversation.ID, Role: models.RoleAssistant, Content: "What's 'kickin'?"},
		},
	}
	completion := &stubCompleter{reply: "Box-fresh!"}

	svc := NewChatService(conversations, messages, completion)
	if _, err := svc.Send(context.Background(), conversation.ID, "Tell me more"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// system prompt + 2 existing + new user message
	if len(completion.gotHistory) != 4 {
		t.Fatalf("Expected 4 assembled messages, got %d", len(completion.gotHistory))
	}
	if completion.gotHistory[0].Role != models.RoleSystem {
		t.Errorf("Expected system prompt first, got %q", completion.gotHistory[0].Role)
	}
	last := completion.gotHistory[len(completion.gotHistory)-1]
	if last.Role != models.RoleUser || last.Content != "Tell me more" {
		t.Errorf("Expected new user message last, got %+v", last)
	}
}

func TestChatService_Send_TrimsContent(t *testing.T) {
	conversation := newTestConversation()
	conversations := &stubConversationStore{conversation: conversation}
	messages := &stubMessageStore{}
	completion := &stubCompleter{reply: "hey"}

	svc := NewChatService(conversations, messages, completion)
	if _, err := svc.Send(context.Background(), conversation.ID, "  hello there  "); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if messages.created[0].Content != "hello there" {
		t.Errorf("Expected trimmed content, got %q", messages.created[0].Content)
	}
}
