package stream

import (
	"context"
	"errors"
	"io"
	"iter"
	"strings"
)

// Stream is the lazy sequence of fragments of one chat completion response.
// It is finite and cannot be restarted. Only Cancel may be called from
// another goroutine.
type Stream struct {
	ctx     context.Context
	cancel  context.CancelFunc
	body    io.ReadCloser
	decoder *Decoder
	readBuf []byte

	pending []string
	readErr error
	text    strings.Builder
	err     error
}

func newStream(ctx context.Context, cancel context.CancelFunc, body io.ReadCloser, decoder *Decoder, readSize int) *Stream {
	return &Stream{
		ctx:     ctx,
		cancel:  cancel,
		body:    body,
		decoder: decoder,
		readBuf: make([]byte, readSize),
	}
}

// Next blocks until the next fragment is decoded and returns it.
//
// At the end sentinel or at the end of the body it returns io.EOF. After
// cancellation it returns the context error and nothing more. A transport
// failure mid-stream yields a *TransportInterruptedError. Once Next returns
// an error it keeps returning it.
func (s *Stream) Next() (string, error) {
	if s.err != nil {
		return "", s.err
	}

	for len(s.pending) == 0 {
		if s.decoder.Done() {
			return s.finish(io.EOF)
		}
		if s.readErr != nil {
			return s.finish(s.classify(s.readErr))
		}

		n, err := s.body.Read(s.readBuf)
		if n > 0 {
			s.pending = append(s.pending, s.decoder.Feed(s.readBuf[:n])...)
		}
		s.readErr = err
	}

	if err := s.ctx.Err(); err != nil {
		return s.finish(err)
	}

	fragment := s.pending[0]
	s.pending = s.pending[1:]
	s.text.WriteString(fragment)
	return fragment, nil
}

// All ranges over the remaining fragments. A terminal error other than
// io.EOF is yielded once with an empty fragment. Breaking out of the loop
// closes the stream.
func (s *Stream) All() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for {
			fragment, err := s.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield("", err)
				return
			}
			if !yield(fragment, nil) {
				s.Close()
				return
			}
		}
	}
}

// Collect drains the stream and returns the full text.
func (s *Stream) Collect() (string, error) {
	for _, err := range s.All() {
		if err != nil {
			return s.Text(), err
		}
	}
	return s.Text(), nil
}

// Text returns the concatenation of every fragment returned so far.
func (s *Stream) Text() string {
	return s.text.String()
}

// Done reports whether the end sentinel was received, as opposed to the
// connection simply closing.
func (s *Stream) Done() bool {
	return s.decoder.Done()
}

// Cancel aborts the underlying request. It is safe to call concurrently
// with Next.
func (s *Stream) Cancel() {
	s.cancel()
}

// Close releases the connection. Subsequent Next calls return ErrClosed
// unless the stream had already ended.
func (s *Stream) Close() error {
	if s.err == nil {
		s.err = ErrClosed
	}
	s.cancel()
	return s.body.Close()
}

func (s *Stream) finish(err error) (string, error) {
	s.err = err
	s.pending = nil
	s.cancel()
	s.body.Close()
	return "", err
}

func (s *Stream) classify(err error) error {
	if errors.Is(err, io.EOF) {
		return io.EOF
	}
	if ctxErr := s.ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return &TransportInterruptedError{Partial: s.text.String(), Err: err}
}
