package journal

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("journal entry not found")
	ErrInvalidInput = errors.New("title and content are required")
)

// ContentType tags alerts raised from journal entries.
const ContentType = "journal"

type Controller interface {
	CreateJournal(ctx *gin.Context)
	ListJournals(ctx *gin.Context)
	DeleteJournal(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req *CreateJournalRequest) (*Journal, error)
	List(ctx context.Context, userID uuid.UUID) ([]Journal, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Repository interface {
	Create(ctx context.Context, journal *Journal) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Journal, error)
	// Delete removes the entry only if it belongs to userID.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Flagger interface {
	Scan(ctx context.Context, userID uuid.UUID, contentType, text string) error
}

type CreateJournalRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}
