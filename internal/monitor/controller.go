package monitor

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

func (c *ControllerImpl) GetRole(ctx *gin.Context) {
	role, err := c.service.GetRole(ctx.Request.Context(), session.UserID(ctx))
	if err != nil && !errors.Is(err, ErrNotFound) {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"role": role})
}

func (c *ControllerImpl) SetRole(ctx *gin.Context) {
	var req SetRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if err := c.service.SetRole(ctx.Request.Context(), session.UserID(ctx), req.Role); err != nil {
		writeError(ctx, err)
		return
	}
	c.GetRole(ctx)
}

func (c *ControllerImpl) RequestMonitoring(ctx *gin.Context) {
	var req MonitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	rel, err := c.service.RequestMonitoring(ctx.Request.Context(), session.UserID(ctx), &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, rel)
}

func (c *ControllerImpl) PendingRequests(ctx *gin.Context) {
	pending, err := c.service.PendingRequests(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, pending)
}

func (c *ControllerImpl) ApproveRequest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.service.Approve(ctx.Request.Context(), session.UserID(ctx), id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ControllerImpl) RemoveRequest(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	if err := c.service.Remove(ctx.Request.Context(), session.UserID(ctx), id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *ControllerImpl) MonitoredUsers(ctx *gin.Context) {
	users, err := c.service.MonitoredUsers(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (c *ControllerImpl) Monitors(ctx *gin.Context) {
	monitors, err := c.service.Monitors(ctx.Request.Context(), session.UserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, monitors)
}

func (c *ControllerImpl) Health(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	report, err := c.service.Health(ctx.Request.Context(), session.UserID(ctx), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (c *ControllerImpl) ResolveAlert(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	alert, err := c.service.ResolveAlert(ctx.Request.Context(), session.UserID(ctx), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, alert)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.GET("/v1/monitor/role", c.GetRole)
	router.PUT("/v1/monitor/role", c.SetRole)
	router.POST("/v1/monitor/requests", c.RequestMonitoring)
	router.GET("/v1/monitor/requests/pending", c.PendingRequests)
	router.POST("/v1/monitor/requests/:id/approve", c.ApproveRequest)
	router.DELETE("/v1/monitor/requests/:id", c.RemoveRequest)
	router.GET("/v1/monitor/users", c.MonitoredUsers)
	router.GET("/v1/monitor/monitors", c.Monitors)
	router.GET("/v1/monitor/users/:id/health", c.Health)
	router.POST("/v1/monitor/alerts/:id/resolve", c.ResolveAlert)
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrNoRole):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrSelfMonitor), errors.Is(err, ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrAlreadyClosed):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
