package inspiration

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("inspiration item not found")
	ErrInvalidInput = errors.New("image_url is required")
)

type Controller interface {
	CreateItem(ctx *gin.Context)
	ListItems(ctx *gin.Context)
	ToggleFavorite(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreateItemRequest) (*Item, error)
	// List returns the user's items newest first, narrowed to those matching
	// query when it is not blank.
	List(ctx context.Context, userID uuid.UUID, query string) ([]Item, error)
	ToggleFavorite(ctx context.Context, userID, id uuid.UUID) (*Item, error)
}

type Repository interface {
	Create(ctx context.Context, item *Item) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Item, error)
	// ToggleFavorite flips is_favorite on the item only if it belongs to userID.
	ToggleFavorite(ctx context.Context, userID, id uuid.UUID) (*Item, error)
}

type CreateItemRequest struct {
	ImageURL string `json:"image_url" binding:"required,http_url"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
}
