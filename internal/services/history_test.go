package services

import (
	"testing"

	"github.com/google/uuid"

	"shoepao-backend/internal/models"
)

func msg(role models.Role, content string) *models.Message {
	return &models.Message{
		ID:      uuid.New(),
		Content: content,
		Role:    role,
	}
}

func TestAssembleHistory_PrependsSystemPrompt(t *testing.T) {
	history := []*models.Message{
		msg(models.RoleUser, "What is Shoepao?"),
		msg(models.RoleAssistant, "Sole-food with serious style!"),
		msg(models.RoleUser, "How much?"),
	}

	assembled := AssembleHistory(history)

	if len(assembled) != len(history)+1 {
		t.Fatalf("Expected %d messages, got %d", len(history)+1, len(assembled))
	}
	if assembled[0].Role != models.RoleSystem {
		t.Errorf("Expected first role to be system, got %q", assembled[0].Role)
	}
	if assembled[0].Content != DefaultSystemPrompt {
		t.Error("Expected first message to carry the default system prompt")
	}
	for i, m := range history {
		if assembled[i+1].Role != m.Role || assembled[i+1].Content != m.Content {
			t.Errorf("Message %d not preserved in order", i)
		}
	}
}

func TestAssembleHistory_KeepsExistingSystemPrompt(t *testing.T) {
	history := []*models.Message{
		msg(models.RoleSystem, "You are a pirate."),
		msg(models.RoleUser, "Ahoy"),
	}

	assembled := AssembleHistory(history)

	if len(assembled) != len(history) {
		t.Fatalf("Expected %d messages, got %d", len(history), len(assembled))
	}
	if assembled[0].Content != "You are a pirate." {
		t.Errorf("Expected seeded system prompt to survive, got %q", assembled[0].Content)
	}
}

func TestAssembleHistory_EmptyHistory(t *testing.T) {
	assembled := AssembleHistory(nil)

	if len(assembled) != 1 {
		t.Fatalf("Expected 1 message, got %d", len(assembled))
	}
	if assembled[0].Role != models.RoleSystem {
		t.Errorf("Expected system role, got %q", assembled[0].Role)
	}
}

func TestAssembleHistory_DoesNotMutateInput(t *testing.T) {
	history := []*models.Message{
		msg(models.RoleUser, "hello"),
	}

	AssembleHistory(history)

	if len(history) != 1 || history[0].Content != "hello" || history[0].Role != models.RoleUser {
		t.Error("Input history was mutated")
	}
}
