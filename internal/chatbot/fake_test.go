package chatbot

import (
	"context"
	"sync"

	"mindscape/be/internal/llm"
)

// fakeProvider replays scripted chunks and records the last request.
type fakeProvider struct {
	mu       sync.Mutex
	chunks   []llm.StreamChunk
	openErr  error
	reply    llm.Message
	requests []llm.CompletionRequest
}

func (f *fakeProvider) Complete(_ context.Context, req llm.CompletionRequest) (llm.Message, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.openErr != nil {
		return llm.Message{}, f.openErr
	}
	return f.reply, nil
}

func (f *fakeProvider) StreamComplete(ctx context.Context, req llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.openErr != nil {
		return nil, f.openErr
	}

	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for _, chunk := range f.chunks {
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (f *fakeProvider) lastRequest() llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func contentChunks(parts ...string) []llm.StreamChunk {
	chunks := make([]llm.StreamChunk, 0, len(parts)+1)
	for _, p := range parts {
		chunks = append(chunks, llm.StreamChunk{Content: p})
	}
	return append(chunks, llm.StreamChunk{Done: true})
}
