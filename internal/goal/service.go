package goal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type ServiceImpl struct {
	repo   Repository
	logger *slog.Logger
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger}
}

func (s *ServiceImpl) Create(ctx context.Context, userID uuid.UUID, req *CreateGoalRequest) (*Goal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	goal := &Goal{ID: uuid.New(), UserID: userID, Title: title}
	if err := s.repo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return goal, nil
}

func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, req *UpdateGoalRequest) (*Goal, error) {
	if req.Progress == nil && req.Completed == nil {
		return nil, ErrInvalidInput
	}
	goal, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	goal.apply(req)
	if err := s.repo.Update(ctx, &goal); err != nil {
		return nil, err
	}
	if goal.Completed {
		s.logger.Info("goal completed", "user_id", userID, "goal_id", id)
	}
	return &goal, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
