package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindscape/be/internal/session"
)

type ControllerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewControllerImpl(service Service, logger *slog.Logger) *ControllerImpl {
	return &ControllerImpl{service: service, logger: logger}
}

func (c *ControllerImpl) GetDashboard(ctx *gin.Context) {
	stats, err := c.service.Stats(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		c.logger.Error("failed to build dashboard", "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.GET("/v1/dashboard", c.GetDashboard)
}
