package goal

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("goal not found")
	ErrInvalidInput = errors.New("invalid goal input")
)

type Controller interface {
	CreateGoal(ctx *gin.Context)
	ListGoals(ctx *gin.Context)
	UpdateGoal(ctx *gin.Context)
	DeleteGoal(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreateGoalRequest) (*Goal, error)
	List(ctx context.Context, userID uuid.UUID) ([]Goal, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *UpdateGoalRequest) (*Goal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Repository methods taking userID only touch goals owned by that user.
type Repository interface {
	Create(ctx context.Context, goal *Goal) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Goal, error)
	Get(ctx context.Context, userID, id uuid.UUID) (Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type CreateGoalRequest struct {
	Title string `json:"title" binding:"required"`
}

type UpdateGoalRequest struct {
	Progress  *int  `json:"progress"`
	Completed *bool `json:"completed"`
}
