package user

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

func (c *ControllerImpl) GetMe(ctx *gin.Context) {
	user, err := c.service.GetUser(ctx.Request.Context(), GetUserRequest{ID: session.UserID(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *ControllerImpl) UpdateMe(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	user, err := c.service.UpdateProfile(ctx.Request.Context(), session.UserID(ctx), &req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, user)
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.GET("/v1/users/me", c.GetMe)
	router.PUT("/v1/users/me", c.UpdateMe)
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrAlreadyExists):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
