package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shoepao-backend/internal/models"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
}

func NewConversationRepo(pool *pgxpool.Pool) *ConversationRepo {
	return &ConversationRepo{pool: pool}
}

func (r *ConversationRepo) Create(ctx context.Context, c *models.Conversation) error {
	c.ID = uuid.New()

	query := `INSERT INTO conversations (id) VALUES ($1) RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return err
	}
	c.Messages = []*models.Message{}
	return nil
}

func (r *ConversationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	c := &models.Conversation{}
	query := `SELECT id, created_at, updated_at FROM conversations WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Messages, err = scanMessages(ctx, r.pool, `SELECT id, conversation_id, content, role, seq, created_at
		FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC, seq ASC`, id)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ConversationRepo) List(ctx context.Context) ([]*models.Conversation, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, created_at, updated_at FROM conversations ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conversations := []*models.Conversation{}
	index := map[uuid.UUID]*models.Conversation{}
	for rows.Next() {
		c := &models.Conversation{Messages: []*models.Message{}}
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		conversations = append(conversations, c)
		index[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	messages, err := scanMessages(ctx, r.pool, `SELECT id, conversation_id, content, role, seq, created_at
		FROM messages ORDER BY created_at ASC, seq ASC`)
	if err != nil {
		return nil, err
	}
	for _, m := range messages {
		if c, ok := index[m.ConversationID]; ok {
			c.Messages = append(c.Messages, m)
		}
	}

	return conversations, nil
}

// Touch refreshes the conversation's updated_at timestamp. Called only
// after an assistant message has been persisted successfully.
func (r *ConversationRepo) Touch(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "UPDATE conversations SET updated_at = NOW() WHERE id = $1", id)
	return err
}

func (r *ConversationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// Messages go with it via ON DELETE CASCADE
	tag, err := r.pool.Exec(ctx, "DELETE FROM conversations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
