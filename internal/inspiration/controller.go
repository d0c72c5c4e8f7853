package inspiration

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

func (c *ControllerImpl) CreateItem(ctx *gin.Context) {
	var req CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	item, err := c.service.Create(ctx.Request.Context(), session.UserID(ctx), &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

func (c *ControllerImpl) ListItems(ctx *gin.Context) {
	items, err := c.service.List(ctx.Request.Context(), session.UserID(ctx), ctx.Query("q"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, items)
}

func (c *ControllerImpl) ToggleFavorite(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid inspiration item id"})
		return
	}
	item, err := c.service.ToggleFavorite(ctx.Request.Context(), session.UserID(ctx), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.POST("/v1/inspiration", c.CreateItem)
	router.GET("/v1/inspiration", c.ListItems)
	router.PATCH("/v1/inspiration/:id/favorite", c.ToggleFavorite)
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
