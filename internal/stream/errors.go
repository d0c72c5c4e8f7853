package stream

import (
	"errors"
	"fmt"
)

var (
	ErrNoBody     = errors.New("response has no readable body")
	ErrNoEndpoint = errors.New("chat endpoint is not configured")
	ErrClosed     = errors.New("stream closed")
	// ErrNoSentinel marks a body that closed before the end sentinel.
	ErrNoSentinel = errors.New("stream ended without the end sentinel")

	// errAmbiguous is never returned to callers; the decoder resolves it by
	// waiting for more input.
	errAmbiguous = errors.New("payload is not a complete JSON document")
)

// StreamStartError reports that the stream never started: the connection
// failed, the endpoint answered with a failure status, or there was no body.
// Nothing was emitted.
type StreamStartError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *StreamStartError) Error() string {
	msg := "failed to start stream"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StreamStartError) Unwrap() error {
	return e.Err
}

// TransportInterruptedError reports a transport failure after the stream
// started. Partial holds the text emitted up to that point.
type TransportInterruptedError struct {
	Partial string
	Err     error
}

func (e *TransportInterruptedError) Error() string {
	return fmt.Sprintf("stream interrupted after %d bytes of text: %v", len(e.Partial), e.Err)
}

func (e *TransportInterruptedError) Unwrap() error {
	return e.Err
}
