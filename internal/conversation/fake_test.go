package conversation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mindscape/be/internal/chatbot"
	"mindscape/be/internal/llm"
	"mindscape/be/internal/logger"
	"mindscape/be/internal/stream"
)

type fakeRepository struct {
	mu       sync.Mutex
	messages []Message
	clock    time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{clock: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (f *fakeRepository) Create(_ context.Context, msg *Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Second)
	msg.CreatedAt = f.clock
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []Message{}
	for _, m := range f.messages {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepository) roles(userID uuid.UUID) []string {
	messages, _ := f.ListByUser(context.Background(), userID)
	roles := make([]string, len(messages))
	for i, m := range messages {
		roles[i] = m.Role
	}
	return roles
}

type scanned struct {
	userID      uuid.UUID
	contentType string
	text        string
}

type fakeFlagger struct {
	mu    sync.Mutex
	scans []scanned
}

func (f *fakeFlagger) Scan(_ context.Context, userID uuid.UUID, contentType, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans = append(f.scans, scanned{userID, contentType, text})
	return nil
}

// upstream serves a scripted completion stream and records request bodies.
func upstream(handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *stream.Client) {
	server := httptest.NewServer(http.HandlerFunc(handler))
	return server, stream.NewClient(server.URL)
}

func replyWith(parts ...string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		stream.SetHeaders(w.Header())
		for _, p := range parts {
			_ = stream.WriteChunk(w, stream.ContentChunk(p))
		}
		_ = stream.WriteDone(w)
	}
}

// cutShort promises more bytes than it writes, so the client sees the
// connection drop mid-body.
func cutShort(part string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		stream.SetHeaders(w.Header())
		w.Header().Set("Content-Length", "4096")
		_ = stream.WriteChunk(w, stream.ContentChunk(part))
	}
}

// scriptedProvider replays fixed chunks as an llm.AIProvider.
type scriptedProvider struct {
	chunks []llm.StreamChunk
}

func (p scriptedProvider) Complete(context.Context, llm.CompletionRequest) (llm.Message, error) {
	return llm.Message{}, nil
}

func (p scriptedProvider) StreamComplete(ctx context.Context, _ llm.CompletionRequest) (<-chan llm.StreamChunk, error) {
	out := make(chan llm.StreamChunk)
	go func() {
		defer close(out)
		for _, chunk := range p.chunks {
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// completionEndpoint serves the chat completion endpoint backed by provider.
func completionEndpoint(provider llm.AIProvider) (*httptest.Server, *stream.Client) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chatbot.NewControllerImpl(chatbot.NewServiceImpl(provider, "", logger.Nop()), logger.Nop()).RegisterRoutes(router)
	server := httptest.NewServer(router)
	return server, stream.NewClient(server.URL + "/v1/chat/completions")
}
