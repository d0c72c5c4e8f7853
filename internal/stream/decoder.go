package stream

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// Decoder turns arbitrarily split chunks of an event stream into content
// fragments. It keeps the unterminated tail of the input between calls.
//
// A Decoder belongs to a single response and is not safe for concurrent use.
type Decoder struct {
	buf    []byte
	done   bool
	logger *slog.Logger
}

// NewDecoder returns a Decoder. A nil logger disables debug output.
func NewDecoder(logger *slog.Logger) *Decoder {
	return &Decoder{logger: logger}
}

// Feed appends chunk to the buffer and decodes every complete line in it.
// It returns the content fragments found, in arrival order.
//
// Decoding stops early at the end sentinel, after which Feed ignores all
// input, or at a line whose payload does not parse. Such a line is kept at
// the front of the buffer and retried on the next Feed, since a payload split
// across chunks and a malformed one look the same.
func (d *Decoder) Feed(chunk []byte) []string {
	if d.done {
		return nil
	}
	d.buf = append(d.buf, chunk...)

	var fragments []string
	consumed := 0
	for {
		idx := bytes.IndexByte(d.buf[consumed:], '\n')
		if idx < 0 {
			break
		}
		start := consumed
		line := d.buf[start : start+idx]
		consumed = start + idx + 1

		fragment, err := d.decodeLine(line)
		if err != nil {
			// Push the line and its newline back.
			consumed = start
			d.debug("deferring unparsable line", "bytes", len(line), "error", err)
			break
		}
		if d.done {
			d.buf = nil
			return fragments
		}
		if fragment != "" {
			fragments = append(fragments, fragment)
		}
	}

	if consumed > 0 {
		rest := make([]byte, len(d.buf)-consumed)
		copy(rest, d.buf[consumed:])
		d.buf = rest
	}
	return fragments
}

// Done reports whether the end sentinel was seen.
func (d *Decoder) Done() bool {
	return d.done
}

// Buffered returns the number of bytes waiting for a line terminator or for
// a retry.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// decodeLine returns the fragment carried by one line, "" for lines that carry
// none, and errAmbiguous when the payload cannot be parsed yet.
func (d *Decoder) decodeLine(line []byte) (string, error) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(bytes.TrimSpace(line)) == 0 || bytes.HasPrefix(line, []byte(CommentPrefix)) {
		return "", nil
	}
	if !bytes.HasPrefix(line, []byte(DataPrefix)) {
		return "", nil
	}

	payload := bytes.TrimSpace(line[len(DataPrefix):])
	if string(payload) == DoneSentinel {
		d.done = true
		return "", nil
	}

	if !json.Valid(payload) {
		return "", errAmbiguous
	}
	// Well-formed JSON of another shape carries no content.
	var chunk Chunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return "", nil
	}
	return chunk.Content(), nil
}

func (d *Decoder) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
