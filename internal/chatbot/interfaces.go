package chatbot

import (
	"context"
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"mindscape/be/internal/stream"
)

var (
	ErrNoMessages       = errors.New("messages must not be empty")
	ErrInvalidRole      = errors.New("message role must be user or assistant")
	ErrProviderFailed   = errors.New("ai provider failed")
	ErrStreamIncomplete = errors.New("ai provider stopped mid-stream")
)

type Controller interface {
	ChatHandler(ctx *gin.Context)
	RegisterRoutes(router gin.IRoutes)
}

type Service interface {
	// StreamChatResponse writes the assistant reply to w as event lines.
	// An error wrapping ErrProviderFailed means nothing was written.
	StreamChatResponse(ctx context.Context, req ChatRequest, w io.Writer) error
	// CompleteChat returns the whole assistant reply at once.
	CompleteChat(ctx context.Context, req ChatRequest) (*stream.Completion, error)
}

type ChatRequest struct {
	Messages []stream.Message `json:"messages"`
	Model    string           `json:"model,omitempty"`
	Stream   bool             `json:"stream,omitempty"`
}
