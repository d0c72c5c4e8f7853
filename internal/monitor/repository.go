package monitor

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"mindscape/be/internal/db"
)

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetRole(ctx context.Context, userID uuid.UUID) (string, error) {
	var role string
	err := r.db.GetContext(ctx, &role, "SELECT role FROM user_role WHERE user_id = $1", userID)
	return role, notFound(err)
}

func (r *RepositoryImpl) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_role (user_id, role) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role, created_at = now()`,
		userID, role,
	)
	return err
}

func (r *RepositoryImpl) CreateRelationship(ctx context.Context, rel *Relationship) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO monitoring_relationship (id, monitor_id, monitored_user_id, relationship_type, approved)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		rel.ID, rel.MonitorID, rel.MonitoredUserID, rel.RelationshipType, rel.Approved,
	).Scan(&rel.CreatedAt)
	if db.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *RepositoryImpl) GetRelationship(ctx context.Context, id uuid.UUID) (Relationship, error) {
	var rel Relationship
	err := r.db.GetContext(ctx, &rel, `
		SELECT id, monitor_id, monitored_user_id, relationship_type, approved, created_at
		FROM monitoring_relationship WHERE id = $1`, id)
	return rel, notFound(err)
}

func (r *RepositoryImpl) ListPending(ctx context.Context, monitoredUserID uuid.UUID) ([]PendingRequest, error) {
	pending := []PendingRequest{}
	err := r.db.SelectContext(ctx, &pending, `
		SELECT r.id, r.monitor_id, r.monitored_user_id, r.relationship_type, r.approved, r.created_at,
		       u.email AS monitor_email, u.display_name AS monitor_name
		FROM monitoring_relationship r
		JOIN user_account u ON u.id = r.monitor_id
		WHERE r.monitored_user_id = $1 AND NOT r.approved
		ORDER BY r.created_at DESC`,
		monitoredUserID,
	)
	return pending, err
}

func (r *RepositoryImpl) Approve(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "UPDATE monitoring_relationship SET approved = TRUE WHERE id = $1", id)
	return affected(res, err)
}

func (r *RepositoryImpl) DeleteRelationship(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM monitoring_relationship WHERE id = $1", id)
	return affected(res, err)
}

func (r *RepositoryImpl) ListMonitored(ctx context.Context, monitorID uuid.UUID) ([]MonitoredUser, error) {
	users := []MonitoredUser{}
	err := r.db.SelectContext(ctx, &users, `
		SELECT r.id AS relationship_id, u.id AS user_id, u.email, u.display_name, r.relationship_type
		FROM monitoring_relationship r
		JOIN user_account u ON u.id = r.monitored_user_id
		WHERE r.monitor_id = $1 AND r.approved
		ORDER BY u.display_name, u.email`,
		monitorID,
	)
	return users, err
}

func (r *RepositoryImpl) ListMonitors(ctx context.Context, monitoredUserID uuid.UUID) ([]ActiveMonitor, error) {
	monitors := []ActiveMonitor{}
	err := r.db.SelectContext(ctx, &monitors, `
		SELECT r.id, r.monitor_id, r.monitored_user_id, r.relationship_type, r.approved, r.created_at,
		       u.email AS monitor_email, u.display_name AS monitor_name, COALESCE(ur.role, '') AS monitor_role
		FROM monitoring_relationship r
		JOIN user_account u ON u.id = r.monitor_id
		LEFT JOIN user_role ur ON ur.user_id = r.monitor_id
		WHERE r.monitored_user_id = $1 AND r.approved
		ORDER BY r.created_at DESC`,
		monitoredUserID,
	)
	return monitors, err
}

func (r *RepositoryImpl) IsApprovedMonitor(ctx context.Context, monitorID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.GetContext(ctx, &ok, `
		SELECT EXISTS (
			SELECT 1 FROM monitoring_relationship
			WHERE monitor_id = $1 AND monitored_user_id = $2 AND approved
		)`, monitorID, userID)
	return ok, err
}

func (r *RepositoryImpl) CreateAlert(ctx context.Context, alert *Alert) error {
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO alert (id, user_id, content_type, content_snippet, flagged_words)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`,
		alert.ID, alert.UserID, alert.ContentType, alert.ContentSnippet, alert.FlaggedWords,
	).Scan(&alert.CreatedAt)
}

func (r *RepositoryImpl) GetAlert(ctx context.Context, id uuid.UUID) (Alert, error) {
	var alert Alert
	err := r.db.GetContext(ctx, &alert, "SELECT * FROM alert WHERE id = $1", id)
	return alert, notFound(err)
}

func (r *RepositoryImpl) ListUnresolvedAlerts(ctx context.Context, userID uuid.UUID) ([]Alert, error) {
	alerts := []Alert{}
	err := r.db.SelectContext(ctx, &alerts,
		"SELECT * FROM alert WHERE user_id = $1 AND NOT resolved ORDER BY created_at DESC", userID)
	return alerts, err
}

func (r *RepositoryImpl) ResolveAlert(ctx context.Context, id, resolvedBy uuid.UUID, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE alert SET resolved = TRUE, resolved_by = $1, resolved_at = $2 WHERE id = $3 AND NOT resolved",
		resolvedBy, at, id,
	)
	if err := affected(res, err); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrAlreadyClosed
		}
		return err
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
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
