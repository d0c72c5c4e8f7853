package auth

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindscape/be/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrMissingSecret      = errors.New("jwt secret key is not configured")
)

type Controller interface {
	Login(ctx *gin.Context)
	Register(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Register(ctx context.Context, req *user.CreateUserRequest) (*LoginResponse, error)
	Authenticate(token string) (uuid.UUID, error)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string                `json:"token"`
	User  *user.GetUserResponse `json:"user,omitempty"`
}
