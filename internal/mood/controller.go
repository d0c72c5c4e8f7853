package mood

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindscape/be/internal/session"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

func (c *ControllerImpl) CreateMood(ctx *gin.Context) {
	var req CreateMoodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	mood, err := c.service.Create(ctx.Request.Context(), session.UserID(ctx), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusCreated, mood)
}

func (c *ControllerImpl) ListMoods(ctx *gin.Context) {
	moods, err := c.service.List(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, moods)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.POST("/v1/moods", c.CreateMood)
	router.GET("/v1/moods", c.ListMoods)
}
