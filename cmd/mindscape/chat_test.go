package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindscape/be/internal/auth"
	"mindscape/be/internal/logger"
	"mindscape/be/internal/stream"
)

func TestChatSession_KeepsHistoryAcrossTurns(t *testing.T) {
	requests := make(chan stream.Request, 2)
	replies := []string{"Hi there.", "Try box breathing."}
	var turn atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req stream.Request
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		requests <- req

		stream.SetHeaders(w.Header())
		for _, word := range strings.SplitAfter(replies[turn.Load()], " ") {
			_ = stream.WriteChunk(w, stream.ContentChunk(word))
		}
		_ = stream.WriteDone(w)
		turn.Add(1)
	}))
	defer server.Close()

	session := newChatSession(stream.NewClient(server.URL), logger.Nop())
	var out bytes.Buffer
	require.NoError(t, session.run(context.Background(), strings.NewReader("hello\n\nI am stressed\n"), &out))

	assert.Equal(t, "Hi there.\nTry box breathing.\n", out.String())

	first, second := <-requests, <-requests
	assert.Len(t, first.Messages, 1)
	assert.Equal(t, []stream.Message{
		{Role: stream.RoleUser, Content: "hello"},
		{Role: stream.RoleAssistant, Content: "Hi there."},
		{Role: stream.RoleUser, Content: "I am stressed"},
	}, second.Messages)
}

func TestChatSession_StartFailureEndsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	session := newChatSession(stream.NewClient(server.URL), logger.Nop())
	err := session.run(context.Background(), strings.NewReader("hello\n"), &bytes.Buffer{})

	var startErr *stream.StreamStartError
	require.ErrorAs(t, err, &startErr)
	assert.Equal(t, http.StatusUnauthorized, startErr.StatusCode)
}

// cancelOnWrite stops the reply as soon as anything is printed.
type cancelOnWrite struct {
	bytes.Buffer
	cancel func()
}

func (c *cancelOnWrite) Write(p []byte) (int, error) {
	c.cancel()
	return c.Buffer.Write(p)
}

func TestChatSession_CancelledReplyIsDropped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stream.SetHeaders(w.Header())
		_ = stream.WriteChunk(w, stream.ContentChunk("partial"))
		<-r.Context().Done()
	}))
	defer server.Close()

	session := newChatSession(stream.NewClient(server.URL), logger.Nop())
	var cancelReply context.CancelFunc
	session.interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancelReply = context.WithCancel(ctx)
		return ctx, cancelReply
	}
	out := &cancelOnWrite{cancel: func() { cancelReply() }}

	require.NoError(t, session.run(context.Background(), strings.NewReader("hello\n"), out))
	assert.Equal(t, "partial\n", out.String())
	assert.Empty(t, session.history)
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "correct horse" {
			http.Error(w, `{"error":"invalid email or password"}`, http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(auth.LoginResponse{Token: "jwt-token"})
	}))
	defer server.Close()

	token, err := login(context.Background(), server.Client(), server.URL, "a@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", token)

	_, err = login(context.Background(), server.Client(), server.URL, "a@example.com", "wrong")
	assert.ErrorContains(t, err, "status 401")
}

func TestTokenRoundTrip(t *testing.T) {
	path := t.TempDir() + "/nested/token"
	require.NoError(t, saveToken(path, "abc"))
	token, err := loadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = loadToken(t.TempDir() + "/missing")
	assert.ErrorContains(t, err, "mindscape login")
}
