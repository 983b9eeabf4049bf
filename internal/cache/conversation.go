package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shoepao-backend/internal/models"
)

// ConversationCache is a read-through cache for single-conversation
// retrievals, the only hot read path. Entries are invalidated on every
// mutation of the conversation's messages.
type ConversationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewConversationCache(client *redis.Client, ttl time.Duration) *ConversationCache {
	return &ConversationCache{client: client, ttl: ttl}
}

func key(id uuid.UUID) string {
	return fmt.Sprintf("conversation:%s", id.String())
}

func (c *ConversationCache) Get(ctx context.Context, id uuid.UUID) (*models.Conversation, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		return nil, false
	}

	conversation := &models.Conversation{}
	if err := json.Unmarshal(data, conversation); err != nil {
		return nil, false
	}
	return conversation, true
}

func (c *ConversationCache) Set(ctx context.Context, conversation *models.Conversation) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(conversation)
	if err != nil {
		return
	}
	c.client.Set(ctx, key(conversation.ID), data, c.ttl)
}

func (c *ConversationCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, key(id))
}
