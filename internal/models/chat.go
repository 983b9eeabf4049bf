package models

import "github.com/google/uuid"

// ChatMessage is one role/content pair of an assembled completion request.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat-turn endpoint.
type ChatRequest struct {
	Content string `json:"content"`
}

// ChatResult pairs the persisted user message with the assistant reply.
type ChatResult struct {
	ConversationID   uuid.UUID `json:"conversation_id"`
	UserMessage      *Message  `json:"user_message"`
	AssistantMessage *Message  `json:"assistant_message"`
}

// AppendMessageRequest is the payload for direct message appends
// (seeding and imports that bypass the chat turn).
type AppendMessageRequest struct {
	Content string `json:"content"`
	Role    Role   `json:"role"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
