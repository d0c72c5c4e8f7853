package conversation

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindscape/be/internal/stream"
)

var (
	ErrEmptyMessage = errors.New("message must not be empty")
	ErrSendInFlight = errors.New("a reply is still being streamed")
)

type Controller interface {
	GetMessages(ctx *gin.Context)
	SendMessage(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	History(ctx context.Context, userID uuid.UUID) ([]Message, error)
	// Send persists content as the user's message, streams the reply to
	// onFragment and persists the reply once it completes.
	Send(ctx context.Context, userID uuid.UUID, content string, onFragment func(string) error) (*Message, error)
}

type Repository interface {
	Create(ctx context.Context, msg *Message) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Message, error)
}

// Opener starts a streamed chat completion. *stream.Client satisfies it.
type Opener interface {
	Open(ctx context.Context, history []stream.Message, next stream.Message) (*stream.Stream, error)
}

// Guard allows one send per key at a time.
type Guard interface {
	// Acquire returns ok=false when key is already held. release must be
	// called once the holder is finished.
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// Flagger scans user-authored text for concerning content.
type Flagger interface {
	Scan(ctx context.Context, userID uuid.UUID, contentType, text string) error
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}
