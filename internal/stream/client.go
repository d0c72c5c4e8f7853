package stream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

const (
	defaultReadSize = 4096
	maxErrorBody    = 512
)

// TokenSource supplies the bearer credential attached to each request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a TokenSource that always returns the same token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// Client opens streamed chat completions against one endpoint.
type Client struct {
	endpoint   string
	model      string
	tokens     TokenSource
	httpClient *http.Client
	logger     *slog.Logger
	readSize   int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces http.DefaultClient. The client should not carry a
// Timeout, which would also bound the body read.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithModel sets the optional "model" field of the request body.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithTokenSource sets where the bearer token comes from. Without one no
// Authorization header is sent.
func WithTokenSource(tokens TokenSource) ClientOption {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLogger enables debug logging of opened streams and deferred lines.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithReadSize sets the size of each transport read.
func WithReadSize(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.readSize = n
		}
	}
}

// NewClient returns a Client posting to endpoint.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: http.DefaultClient,
		readSize:   defaultReadSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open sends history followed by next and returns the response as a Stream.
// Each call opens a new connection. Any failure before the body can be read
// is a *StreamStartError.
//
// Cancelling ctx, or calling Cancel on the returned Stream, aborts the
// transfer.
func (c *Client) Open(ctx context.Context, history []Message, next Message) (*Stream, error) {
	if c.endpoint == "" {
		return nil, &StreamStartError{Err: ErrNoEndpoint}
	}

	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, next)

	body, err := json.Marshal(Request{Messages: messages, Model: c.model, Stream: true})
	if err != nil {
		return nil, &StreamStartError{Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, &StreamStartError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			cancel()
			return nil, &StreamStartError{Err: err}
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, &StreamStartError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		cancel()
		return nil, &StreamStartError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if resp.Body == nil || resp.Body == http.NoBody {
		cancel()
		return nil, &StreamStartError{StatusCode: resp.StatusCode, Err: ErrNoBody}
	}

	if c.logger != nil {
		c.logger.Debug("chat stream opened", "endpoint", c.endpoint, "messages", len(messages))
	}
	return newStream(ctx, cancel, resp.Body, NewDecoder(c.logger), c.readSize), nil
}
