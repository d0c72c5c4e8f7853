package inspiration

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

func (s *ServiceImpl) Create(ctx context.Context, userID uuid.UUID, req *CreateItemRequest) (*Item, error) {
	imageURL := strings.TrimSpace(req.ImageURL)
	if imageURL == "" {
		return nil, ErrInvalidInput
	}

	item := &Item{
		ID:       uuid.New(),
		UserID:   userID,
		ImageURL: imageURL,
		Title:    strings.TrimSpace(req.Title),
		Notes:    strings.TrimSpace(req.Notes),
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create inspiration item: %w", err)
	}
	return item, nil
}

func (s *ServiceImpl) List(ctx context.Context, userID uuid.UUID, query string) ([]Item, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return items, nil
	}
	matched := []Item{}
	for _, item := range items {
		if item.Matches(query) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

func (s *ServiceImpl) ToggleFavorite(ctx context.Context, userID, id uuid.UUID) (*Item, error) {
	item, err := s.repo.ToggleFavorite(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("inspiration favorite toggled", "item_id", id, "favorite", item.IsFavorite)
	return item, nil
}
