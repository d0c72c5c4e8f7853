package user

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidInput  = errors.New("invalid user input")
)

type Controller interface {
	GetMe(ctx *gin.Context)
	UpdateMe(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	GetUser(ctx context.Context, req GetUserRequest) (*GetUserResponse, error)
	GetUserPassword(ctx context.Context, req GetUserRequest) (*GetUserPasswordResponse, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*GetUserResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*GetUserResponse, error)
}

type Repository interface {
	GetById(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user *User) error
	UpdateDisplayName(ctx context.Context, id uuid.UUID, displayName string) error
}

type GetUserResponse struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// GetUserRequest looks a user up by ID, or by Email when ID is uuid.Nil.
type GetUserRequest struct {
	ID    uuid.UUID `json:"id" form:"id" uri:"id"`
	Email string    `json:"email" form:"email"`
}

type CreateUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
}

type GetUserPasswordResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
}
