package dashboard

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type ServiceImpl struct {
	repo Repository
}

func NewServiceImpl(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Stats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	moods, err := s.repo.CountMoods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count moods: %w", err)
	}
	journals, err := s.repo.CountJournals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count journals: %w", err)
	}
	progress, err := s.repo.GoalProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("goal progress: %w", err)
	}
	counts, err := s.repo.MoodDistribution(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("mood distribution: %w", err)
	}

	distribution := orderedmap.New[string, int](len(counts))
	for _, c := range counts {
		distribution.Set(c.Label, c.Count)
	}

	return &Stats{
		MoodCount:           moods,
		JournalCount:        journals,
		GoalCount:           len(progress),
		AverageGoalProgress: average(progress),
		MoodDistribution:    distribution,
	}, nil
}

// average rounds half away from zero; it is 0 for no goals.
func average(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
