package mood

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

func (s *ServiceImpl) Create(ctx context.Context, userID uuid.UUID, req *CreateMoodRequest) (*Mood, error) {
	label := strings.TrimSpace(req.Mood)
	if label == "" {
		return nil, ErrInvalidInput
	}

	mood := &Mood{
		ID:     uuid.New(),
		UserID: userID,
		Mood:   label,
		Note:   strings.TrimSpace(req.Note),
	}
	if err := s.repo.Create(ctx, mood); err != nil {
		return nil, fmt.Errorf("create mood: %w", err)
	}
	s.logger.Debug("mood logged", "user_id", userID, "mood", label)
	return mood, nil
}

func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]Mood, error) {
	return s.repo.ListByUser(ctx, userID, 0)
}
