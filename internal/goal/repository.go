package goal

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"mindscape/be/internal/db"
)

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Create(ctx context.Context, goal *Goal) error {
	return r.db.QueryRowxContext(ctx,
		"INSERT INTO goal (id, user_id, title, progress, completed) VALUES ($1, $2, $3, $4, $5) RETURNING created_at",
		goal.ID, goal.UserID, goal.Title, goal.Progress, goal.Completed,
	).Scan(&goal.CreatedAt)
}

func (r *RepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	goals := []Goal{}
	err := r.db.SelectContext(ctx, &goals,
		"SELECT id, user_id, title, progress, completed, created_at FROM goal WHERE user_id = $1 ORDER BY created_at",
		userID,
	)
	return goals, err
}

func (r *RepositoryImpl) Get(ctx context.Context, userID, id uuid.UUID) (Goal, error) {
	var goal Goal
	err := r.db.GetContext(ctx, &goal,
		"SELECT id, user_id, title, progress, completed, created_at FROM goal WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Goal{}, ErrNotFound
	}
	return goal, err
}

func (r *RepositoryImpl) Update(ctx context.Context, goal *Goal) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE goal SET progress = $1, completed = $2 WHERE id = $3 AND user_id = $4",
		goal.Progress, goal.Completed, goal.ID, goal.UserID,
	)
	return affected(res, err)
}

func (r *RepositoryImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM goal WHERE id = $1 AND user_id = $2", id, userID)
	return affected(res, err)
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
