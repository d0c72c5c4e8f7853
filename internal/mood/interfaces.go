package mood

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("mood is required")

type Controller interface {
	CreateMood(ctx *gin.Context)
	ListMoods(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreateMoodRequest) (*Mood, error)
	List(ctx context.Context, userID uuid.UUID) ([]Mood, error)
}

type Repository interface {
	Create(ctx context.Context, mood *Mood) error
	// ListByUser returns moods newest first. limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Mood, error)
}

type CreateMoodRequest struct {
	Mood string `json:"mood" binding:"required"`
	Note string `json:"note"`
}
