package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"mindscape/be/internal/user"
)

type ServiceImpl struct {
	repo   Repository
	moods  MoodReader
	users  UserFinder
	logger *slog.Logger
	now    func() time.Time
}

func NewServiceImpl(repo Repository, moods MoodReader, users UserFinder, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:   repo,
		moods:  moods,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ServiceImpl) GetRole(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.repo.GetRole(ctx, userID)
}

func (s *ServiceImpl) SetRole(ctx context.Context, userID uuid.UUID, role string) error {
	role = strings.ToLower(strings.TrimSpace(role))
	if !validRole(role) {
		return ErrInvalidRole
	}
	return s.repo.SetRole(ctx, userID, role)
}

func (s *ServiceImpl) RequestMonitoring(ctx context.Context, monitorID uuid.UUID, req *MonitorRequest) (*Relationship, error) {
	relType := strings.TrimSpace(req.RelationshipType)
	if relType == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.repo.GetRole(ctx, monitorID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoRole
		}
		return nil, err
	}

	target, err := s.users.GetUser(ctx, user.GetUserRequest{Email: req.Email})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find monitored user: %w", err)
	}
	if target.ID == monitorID {
		return nil, ErrSelfMonitor
	}

	rel := &Relationship{
		ID:               uuid.New(),
		MonitorID:        monitorID,
		MonitoredUserID:  target.ID,
		RelationshipType: relType,
	}
	if err := s.repo.CreateRelationship(ctx, rel); err != nil {
		return nil, err
	}
	s.logger.Info("monitoring requested", "monitor_id", monitorID, "user_id", target.ID)
	return rel, nil
}

func (s *ServiceImpl) PendingRequests(ctx context.Context, userID uuid.UUID) ([]PendingRequest, error) {
	return s.repo.ListPending(ctx, userID)
}

// Approve grants consent. Only the monitored user may approve.
func (s *ServiceImpl) Approve(ctx context.Context, userID, relationshipID uuid.UUID) error {
	rel, err := s.repo.GetRelationship(ctx, relationshipID)
	if err != nil {
		return err
	}
	if rel.MonitoredUserID != userID {
		return ErrForbidden
	}
	if rel.Approved {
		return nil
	}
	return s.repo.Approve(ctx, relationshipID)
}

// Remove denies a pending request or revokes an approved one. Either party
// may do so.
func (s *ServiceImpl) Remove(ctx context.Context, userID, relationshipID uuid.UUID) error {
	rel, err := s.repo.GetRelationship(ctx, relationshipID)
	if err != nil {
		return err
	}
	if rel.MonitoredUserID != userID && rel.MonitorID != userID {
		return ErrForbidden
	}
	return s.repo.DeleteRelationship(ctx, relationshipID)
}

func (s *ServiceImpl) MonitoredUsers(ctx context.Context, monitorID uuid.UUID) ([]MonitoredUser, error) {
	return s.repo.ListMonitored(ctx, monitorID)
}

func (s *ServiceImpl) Monitors(ctx context.Context, userID uuid.UUID) ([]ActiveMonitor, error) {
	return s.repo.ListMonitors(ctx, userID)
}

func (s *ServiceImpl) Health(ctx context.Context, monitorID, userID uuid.UUID) (*HealthReport, error) {
	if err := s.authorize(ctx, monitorID, userID); err != nil {
		return nil, err
	}

	moods, err := s.moods.ListByUser(ctx, userID, HealthMoodLimit)
	if err != nil {
		return nil, fmt.Errorf("list moods: %w", err)
	}
	alerts, err := s.repo.ListUnresolvedAlerts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	return &HealthReport{
		UserID: userID,
		Moods:  moods,
		Alerts: alerts,
		Chart:  chart(moods),
	}, nil
}

func (s *ServiceImpl) ResolveAlert(ctx context.Context, monitorID, alertID uuid.UUID) (*Alert, error) {
	alert, err := s.repo.GetAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, monitorID, alert.UserID); err != nil {
		return nil, err
	}

	at := s.now().UTC()
	if err := s.repo.ResolveAlert(ctx, alertID, monitorID, at); err != nil {
		return nil, err
	}
	alert.Resolved = true
	alert.ResolvedBy = uuid.NullUUID{UUID: monitorID, Valid: true}
	alert.ResolvedAt = &at
	return &alert, nil
}

func (s *ServiceImpl) authorize(ctx context.Context, monitorID, userID uuid.UUID) error {
	ok, err := s.repo.IsApprovedMonitor(ctx, monitorID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return nil
}
