package llm

import (
	"context"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages []Message
	Model    string
}

// StreamChunk is one delta of a streamed completion. The last chunk on a
// channel has either Done set or Err set; the channel is closed after it.
type StreamChunk struct {
	Content string
	Done    bool
	Err     error
}

type AIProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (Message, error)
	StreamComplete(ctx context.Context, req CompletionRequest) (<-chan StreamChunk, error)
}

// send delivers chunk unless ctx is cancelled first.
func send(ctx context.Context, chunks chan<- StreamChunk, chunk StreamChunk) bool {
	select {
	case chunks <- chunk:
		return true
	case <-ctx.Done():
		return false
	}
}
