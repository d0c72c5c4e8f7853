package dashboard

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type Controller interface {
	GetDashboard(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	Stats(ctx context.Context, userID uuid.UUID) (*Stats, error)
}

type Repository interface {
	CountMoods(ctx context.Context, userID uuid.UUID) (int, error)
	CountJournals(ctx context.Context, userID uuid.UUID) (int, error)
	GoalProgress(ctx context.Context, userID uuid.UUID) ([]int, error)
	// MoodDistribution returns label counts, most frequent first.
	MoodDistribution(ctx context.Context, userID uuid.UUID) ([]LabelCount, error)
}

type LabelCount struct {
	Label string `db:"label"`
	Count int    `db:"count"`
}

type Stats struct {
	MoodCount           int                                 `json:"mood_count"`
	JournalCount        int                                 `json:"journal_count"`
	GoalCount           int                                 `json:"goal_count"`
	AverageGoalProgress int                                 `json:"average_goal_progress"`
	MoodDistribution    *orderedmap.OrderedMap[string, int] `json:"mood_distribution"`
}
