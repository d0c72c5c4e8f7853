package user

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

func (r *RepositoryImpl) GetById(ctx context.Context, id uuid.UUID) (User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM user_account WHERE id = $1", id)
	return user, notFound(err)
}

func (r *RepositoryImpl) GetByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, "SELECT * FROM user_account WHERE lower(email) = lower($1)", email)
	return user, notFound(err)
}

func (r *RepositoryImpl) Create(ctx context.Context, user *User) error {
	err := r.db.QueryRowxContext(ctx,
		"INSERT INTO user_account (id, email, password, display_name) VALUES ($1, $2, $3, $4) RETURNING created_at",
		user.ID, user.Email, user.Password, user.DisplayName,
	).Scan(&user.CreatedAt)
	if db.IsUniqueViolation(err) {
		return ErrAlreadyExists
	}
	return err
}

func (r *RepositoryImpl) UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE user_account SET display_name = $1 WHERE id = $2", displayName, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
