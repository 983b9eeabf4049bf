package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"shoepao-backend/internal/cache"
	"shoepao-backend/internal/models"
)

type MessageHandler struct {
	messageRepo      messageRepository
	conversationRepo conversationRepository
	cache            *cache.ConversationCache
}

func NewMessageHandler(messageRepo messageRepository, conversationRepo conversationRepository, conversationCache *cache.ConversationCache) *MessageHandler {
	return &MessageHandler{
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
		cache:            conversationCache,
	}
}

// List returns messages across all conversations, or one conversation's
// history when the ?conversation= query parameter is set.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	conversationID := uuid.Nil
	if param := r.URL.Query().Get("conversation"); param != "" {
		id, err := uuid.Parse(param)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid conversation ID", r))
			return
		}
		conversationID = id
	}

	messages, err := h.messageRepo.List(r.Context(), conversationID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to list messages", r))
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

type createMessageRequest struct {
	ConversationID uuid.UUID   `json:"conversation_id"`
	Content        string      `json:"content"`
	Role           models.Role `json:"role"`
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fieldErrors := make(map[string]string)
	if req.ConversationID == uuid.Nil {
		fieldErrors["conversation_id"] = "Conversation ID is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		fieldErrors["content"] = "Content is required"
	}
	if !req.Role.Valid() {
		fieldErrors["role"] = "Role must be one of user, assistant, system"
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	if _, err := h.conversationRepo.GetByID(r.Context(), req.ConversationID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Conversation not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load conversation", r))
		return
	}

	message := &models.Message{
		ConversationID: req.ConversationID,
		Content:        req.Content,
		Role:           req.Role,
	}
	if err := h.messageRepo.Create(r.Context(), message); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create message", r))
		return
	}

	h.cache.Invalidate(r.Context(), req.ConversationID)
	writeJSON(w, http.StatusCreated, message)
}

func (h *MessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid message ID", r))
		return
	}

	message, err := h.messageRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Message not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load message", r))
		return
	}

	writeJSON(w, http.StatusOK, message)
}

type updateMessageRequest struct {
	Content string      `json:"content"`
	Role    models.Role `json:"role"`
}

func (h *MessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid message ID", r))
		return
	}

	var req updateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Content) == "" {
		fieldErrors["content"] = "Content is required"
	}
	if !req.Role.Valid() {
		fieldErrors["role"] = "Role must be one of user, assistant, system"
	}
	if len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	message, err := h.messageRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Message not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load message", r))
		return
	}

	message.Content = req.Content
	message.Role = req.Role
	if err := h.messageRepo.Update(r.Context(), message); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update message", r))
		return
	}

	h.cache.Invalidate(r.Context(), message.ConversationID)
	writeJSON(w, http.StatusOK, message)
}

func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid message ID", r))
		return
	}

	message, err := h.messageRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Message not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load message", r))
		return
	}

	if err := h.messageRepo.Delete(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete message", r))
		return
	}

	h.cache.Invalidate(r.Context(), message.ConversationID)
	w.WriteHeader(http.StatusNoContent)
}
