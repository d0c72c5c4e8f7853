package journal

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

func (c *ControllerImpl) CreateJournal(ctx *gin.Context) {
	var req CreateJournalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	journal, err := c.service.Create(ctx.Request.Context(), session.UserID(ctx), &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, journal)
}

func (c *ControllerImpl) ListJournals(ctx *gin.Context) {
	journals, err := c.service.List(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, journals)
}

func (c *ControllerImpl) DeleteJournal(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid journal id"})
		return
	}
	if err := c.service.Delete(ctx.Request.Context(), session.UserID(ctx), id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.POST("/v1/journals", c.CreateJournal)
	router.GET("/v1/journals", c.ListJournals)
	router.DELETE("/v1/journals/:id", c.DeleteJournal)
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
