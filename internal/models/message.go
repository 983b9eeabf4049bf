package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of message authors a conversation can hold.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	Content        string    `json:"content"`
	Role           Role      `json:"role"`
	// Seq breaks ties between messages created within the same clock tick.
	Seq       int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
