// Package stream consumes chat completion responses delivered as
// newline-delimited "data: <json>" event lines, the way OpenAI-compatible
// endpoints stream them, and turns them into ordered text fragments.
//
// The same wire types are used by the server side to write such streams.
package stream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// DataPrefix starts every event line that carries a payload.
	DataPrefix = "data: "
	// DoneSentinel is the payload of the terminal event line.
	DoneSentinel = "[DONE]"
	// CommentPrefix starts lines that carry no event.
	CommentPrefix = ":"
)

// Message is one entry of a chat transcript as sent on the wire.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the body POSTed to a chat completion endpoint.
type Request struct {
	Messages []Message `json:"messages"`
	Model    string    `json:"model,omitempty"`
	Stream   bool      `json:"stream,omitempty"`
}

// Chunk is the structured payload of one "data:" line.
type Chunk struct {
	Choices []Choice `json:"choices"`
}

// Choice is one alternative within a chunk; only the first is read.
type Choice struct {
	Delta        Delta  `json:"delta"`
	FinishReason string `json:"finish_reason,omitempty"`
}

// Delta carries the text added by one chunk.
type Delta struct {
	Content string `json:"content"`
}

// Content returns the incremental text of the first choice, if any.
func (c Chunk) Content() string {
	if len(c.Choices) == 0 {
		return ""
	}
	return c.Choices[0].Delta.Content
}

// Completion is the body of a non-streamed chat completion response.
type Completion struct {
	Choices []CompletionChoice `json:"choices"`
}

type CompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason,omitempty"`
}

// ContentChunk wraps a text fragment in the chunk shape.
func ContentChunk(content string) Chunk {
	return Chunk{Choices: []Choice{{Delta: Delta{Content: content}}}}
}

// WriteChunk writes one "data:" event line followed by a blank line and
// flushes w when it supports it.
func WriteChunk(w io.Writer, chunk Chunk) error {
	jsonData, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("failed to marshal SSE chunk: %w", err)
	}

	if _, err := fmt.Fprintf(w, "%s%s\n\n", DataPrefix, jsonData); err != nil {
		return fmt.Errorf("failed to write SSE chunk: %w", err)
	}
	flush(w)
	return nil
}

// WriteDone writes the terminal sentinel line.
func WriteDone(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s%s\n\n", DataPrefix, DoneSentinel); err != nil {
		return fmt.Errorf("failed to write SSE sentinel: %w", err)
	}
	flush(w)
	return nil
}

// WriteComment writes a comment line. Consumers ignore it.
func WriteComment(w io.Writer, text string) error {
	if _, err := fmt.Fprintf(w, "%s %s\n\n", CommentPrefix, text); err != nil {
		return fmt.Errorf("failed to write SSE comment: %w", err)
	}
	flush(w)
	return nil
}

// SetHeaders sets the response headers required for an event stream.
func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
}

func flush(w io.Writer) {
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
