package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mindtrack/mindtrack/internal/model"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *model.Conversation) error
	// Recent returns the newest conversations first.
	Recent(ctx context.Context, userID string, limit int) ([]*model.Conversation, error)
	All(ctx context.Context, userID string) ([]*model.Conversation, error)
}

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, c *model.Conversation) error {
	if c.Topics == nil {
		c.Topics = model.StringList{}
	}

	query := `INSERT INTO conversations (id, user_id, user_message, bot_response, topics, sentiment, source, created_at)
	          VALUES (:id, :user_id, :user_message, :bot_response, :topics, :sentiment, :source, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

func (r *conversationRepository) Recent(ctx context.Context, userID string, limit int) ([]*model.Conversation, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	var conversations []*model.Conversation
	query := `SELECT * FROM conversations WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`

	err := r.db.SelectContext(ctx, &conversations, query, userID, limit)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *conversationRepository) All(ctx context.Context, userID string) ([]*model.Conversation, error) {
	var conversations []*model.Conversation
	query := `SELECT * FROM conversations WHERE user_id = $1 ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &conversations, query, userID)
	if err != nil {
		return nil, err
	}
	return conversations, nil
}
