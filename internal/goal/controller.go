package goal

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindscape/be/internal/session"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

func (c *ControllerImpl) CreateGoal(ctx *gin.Context) {
	var req CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	goal, err := c.service.Create(ctx.Request.Context(), session.UserID(ctx), &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, goal)
}

func (c *ControllerImpl) ListGoals(ctx *gin.Context) {
	goals, err := c.service.List(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, goals)
}

func (c *ControllerImpl) UpdateGoal(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}
	var req UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	goal, err := c.service.Update(ctx.Request.Context(), session.UserID(ctx), id, &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, goal)
}

func (c *ControllerImpl) DeleteGoal(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal id"})
		return
	}
	if err := c.service.Delete(ctx.Request.Context(), session.UserID(ctx), id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.POST("/v1/goals", c.CreateGoal)
	router.GET("/v1/goals", c.ListGoals)
	router.PATCH("/v1/goals/:id", c.UpdateGoal)
	router.DELETE("/v1/goals/:id", c.DeleteGoal)
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
