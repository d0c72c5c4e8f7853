package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindscape/be/internal/user"
)

type ControllerImpl struct {
	service Service
}

func NewControllerImpl(service Service) *ControllerImpl {
	return &ControllerImpl{service: service}
}

// Login handler
func (c *ControllerImpl) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	token, err := c.service.Login(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	ctx.JSON(http.StatusOK, token)
}

func (c *ControllerImpl) Register(ctx *gin.Context) {
	var req user.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	switch {
	case err == nil:
		ctx.JSON(http.StatusCreated, resp)
	case errors.Is(err, user.ErrAlreadyExists):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrInvalidInput):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
	}
}

func (c *ControllerImpl) RegisterRoutes(router gin.IRoutes) {
	router.POST("/v1/auth/login", c.Login)
	router.POST("/v1/auth/register", c.Register)
}
