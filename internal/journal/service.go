package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

type ServiceImpl struct {
	repo    Repository
	flagger Flagger
	logger  *slog.Logger
}

// NewServiceImpl wires the journal service. flagger may be nil.
func NewServiceImpl(repo Repository, flagger Flagger, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, flagger: flagger, logger: logger}
}

func (s *ServiceImpl) Create(ctx context.Context, userID uuid.UUID, req *CreateJournalRequest) (*Journal, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, ErrInvalidInput
	}

	journal := &Journal{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   title,
		Content: content,
	}
	if err := s.repo.Create(ctx, journal); err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}

	if s.flagger != nil {
		if err := s.flagger.Scan(ctx, userID, ContentType, title+"\n"+content); err != nil {
			s.logger.Error("failed to scan journal entry", "journal_id", journal.ID, "error", err)
		}
	}
	return journal, nil
}

func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID) ([]Journal, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}
