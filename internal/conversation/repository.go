package conversation

import (
	"context"

	"github.com/google/uuid"

	"mindscape/be/internal/db"
)

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Create(ctx context.Context, msg *Message) error {
	return r.db.QueryRowxContext(ctx,
		"INSERT INTO chat_message (id, user_id, role, content) VALUES ($1, $2, $3, $4) RETURNING created_at",
		msg.ID, msg.UserID, msg.Role, msg.Content,
	).Scan(&msg.CreatedAt)
}

func (r *RepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]Message, error) {
	messages := []Message{}
	err := r.db.SelectContext(ctx, &messages,
		"SELECT id, user_id, role, content, created_at FROM chat_message WHERE user_id = $1 ORDER BY created_at, id",
		userID,
	)
	return messages, err
}
