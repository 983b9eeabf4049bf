package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"shoepao-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

func (r *MessageRepo) Create(ctx context.Context, m *models.Message) error {
	m.ID = uuid.New()

	query := `INSERT INTO messages (id, conversation_id, content, role)
		VALUES ($1, $2, $3, $4) RETURNING seq, created_at`

	return r.pool.QueryRow(ctx, query,
		m.ID, m.ConversationID, m.Content, m.Role,
	).Scan(&m.Seq, &m.CreatedAt)
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Message, error) {
	m := &models.Message{}
	query := `SELECT id, conversation_id, content, role, seq, created_at FROM messages WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ConversationID, &m.Content, &m.Role, &m.Seq, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns messages in canonical history order. A zero conversationID
// lists messages across all conversations.
func (r *MessageRepo) List(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	query := `SELECT id, conversation_id, content, role, seq, created_at
		FROM messages ORDER BY created_at ASC, seq ASC`
	args := []interface{}{}

	if conversationID != uuid.Nil {
		query = `SELECT id, conversation_id, content, role, seq, created_at
			FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC, seq ASC`
		args = append(args, conversationID)
	}

	return scanMessages(ctx, r.pool, query, args...)
}

func (r *MessageRepo) Update(ctx context.Context, m *models.Message) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE messages SET content = $1, role = $2 WHERE id = $3",
		m.Content, m.Role, m.ID,
	)
	return err
}

func (r *MessageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM messages WHERE id = $1", id)
	return err
}

func scanMessages(ctx context.Context, pool *pgxpool.Pool, query string, args ...interface{}) ([]*models.Message, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		m := &models.Message{}
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Content, &m.Role, &m.Seq, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
