package inspiration

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"mindscape/be/internal/db"
)

const itemColumns = "id, user_id, image_url, title, notes, is_favorite, created_at"

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Create(ctx context.Context, item *Item) error {
	return r.db.QueryRowxContext(ctx,
		"INSERT INTO inspiration_item (id, user_id, image_url, title, notes) VALUES ($1, $2, $3, $4, $5) RETURNING created_at",
		item.ID, item.UserID, item.ImageURL, item.Title, item.Notes,
	).Scan(&item.CreatedAt)
}

func (r *RepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	items := []Item{}
	err := r.db.SelectContext(ctx, &items,
		"SELECT "+itemColumns+" FROM inspiration_item WHERE user_id = $1 ORDER BY created_at DESC",
		userID,
	)
	return items, err
}

func (r *RepositoryImpl) ToggleFavorite(ctx context.Context, userID, id uuid.UUID) (*Item, error) {
	var item Item
	err := r.db.GetContext(ctx, &item,
		"UPDATE inspiration_item SET is_favorite = NOT is_favorite WHERE id = $1 AND user_id = $2 RETURNING "+itemColumns,
		id, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}
