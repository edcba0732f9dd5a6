// Package sse reads the upstream's line-delimited event stream and frames
// outbound Server-Sent Events for OpenAI-compatible clients.
package sse

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
)

// MaxLineSize bounds a single upstream line. Longer lines are discarded.
const MaxLineSize = 1024 * 1024

var dataField = []byte("data")

// Reader yields the payload of every "data:" line of an SSE stream. The
// upstream sends one complete JSON document per data line, so each line is
// treated as its own event. Blank lines, comments, other fields and lines
// longer than MaxLineSize are skipped.
type Reader struct {
	br   *bufio.Reader
	line []byte
}

func NewReader(src io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(src, 64*1024)}
}

// Next blocks until the next data payload is available. It returns io.EOF
// once the source is exhausted. The returned slice is only valid until the
// following call to Next.
func (r *Reader) Next() ([]byte, error) {
	for {
		line, size, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if size > MaxLineSize {
			slog.Warn("Skipping oversized upstream line", "bytes", size, "limit", MaxLineSize)
			continue
		}
		if len(line) == 0 || line[0] == ':' {
			continue
		}

		field, value, ok := bytes.Cut(line, []byte(":"))
		if !ok || !bytes.Equal(field, dataField) {
			continue
		}
		// A single space after the colon is optional.
		value = bytes.TrimPrefix(value, []byte(" "))
		if len(bytes.TrimSpace(value)) == 0 {
			continue
		}
		return value, nil
	}
}

// readLine returns the next line without its terminator and the line's full
// size. Only the first MaxLineSize bytes are buffered; the rest of an
// oversized line is read and dropped.
func (r *Reader) readLine() ([]byte, int, error) {
	r.line = r.line[:0]
	size := 0
	for {
		frag, err := r.br.ReadSlice('\n')
		size += len(frag)
		if size <= MaxLineSize {
			r.line = append(r.line, frag...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		// A final line without a newline is still a line.
		if errors.Is(err, io.EOF) && size > 0 {
			err = nil
		}
		if err != nil {
			return nil, 0, err
		}
		return bytes.TrimRight(r.line, "\r\n"), size, nil
	}
}
