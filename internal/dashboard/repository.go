package dashboard

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

func (r *RepositoryImpl) CountMoods(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT count(*) FROM mood WHERE user_id = $1", userID)
	return n, err
}

func (r *RepositoryImpl) CountJournals(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT count(*) FROM journal WHERE user_id = $1", userID)
	return n, err
}

func (r *RepositoryImpl) GoalProgress(ctx context.Context, userID uuid.UUID) ([]int, error) {
	progress := []int{}
	err := r.db.SelectContext(ctx, &progress, "SELECT progress FROM goal WHERE user_id = $1", userID)
	return progress, err
}

func (r *RepositoryImpl) MoodDistribution(ctx context.Context, userID uuid.UUID) ([]LabelCount, error) {
	counts := []LabelCount{}
	err := r.db.SelectContext(ctx, &counts, `
		SELECT lower(mood) AS label, count(*) AS count
		FROM mood
		WHERE user_id = $1
		GROUP BY lower(mood)
		ORDER BY count DESC, label`,
		userID,
	)
	return counts, err
}
