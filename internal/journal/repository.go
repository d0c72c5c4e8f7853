package journal

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

func (r *RepositoryImpl) Create(ctx context.Context, journal *Journal) error {
	return r.db.QueryRowxContext(ctx,
		"INSERT INTO journal (id, user_id, title, content) VALUES ($1, $2, $3, $4) RETURNING created_at",
		journal.ID, journal.UserID, journal.Title, journal.Content,
	).Scan(&journal.CreatedAt)
}

func (r *RepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]Journal, error) {
	journals := []Journal{}
	err := r.db.SelectContext(ctx, &journals,
		"SELECT id, user_id, title, content, created_at FROM journal WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	return journals, err
}

func (r *RepositoryImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM journal WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
