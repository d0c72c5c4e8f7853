package mood

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

func (r *RepositoryImpl) Create(ctx context.Context, mood *Mood) error {
	return r.db.QueryRowxContext(ctx,
		"INSERT INTO mood (id, user_id, mood, note) VALUES ($1, $2, $3, $4) RETURNING created_at",
		mood.ID, mood.UserID, mood.Mood, mood.Note,
	).Scan(&mood.CreatedAt)
}

func (r *RepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Mood, error) {
	moods := []Mood{}
	query := "SELECT id, user_id, mood, note, created_at FROM mood WHERE user_id = $1 ORDER BY created_at DESC"
	if limit > 0 {
		err := r.db.SelectContext(ctx, &moods, query+" LIMIT $2", userID, limit)
		return moods, err
	}
	err := r.db.SelectContext(ctx, &moods, query, userID)
	return moods, err
}
