package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrClosed is returned by writes after a terminal frame was sent.
var ErrClosed = errors.New("sse: stream already terminated")

const doneFrame = "data: [DONE]\n\n"

// ErrorPayload is the body of a terminal error frame.
type ErrorPayload struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// SetHeaders prepares a response for streaming. No Content-Length is set,
// so net/http applies chunked transfer encoding.
func SetHeaders(h http.Header) {
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
}

// Writer frames values as "data: <json>\n\n" and flushes after every frame.
// It is not safe for concurrent use; one exchange owns one Writer.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
	closed  bool
}

func NewWriter(w io.Writer) *Writer {
	sw := &Writer{w: w}
	if f, ok := w.(http.Flusher); ok {
		sw.flusher = f
	}
	return sw
}

// WriteChunk marshals v and writes it as one data frame. A write error
// usually means the client went away.
func (s *Writer) WriteChunk(v any) error {
	if s.closed {
		return ErrClosed
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sse: marshal frame: %w", err)
	}
	return s.write("data: " + string(data) + "\n\n")
}

// WriteDone writes the [DONE] sentinel and closes the writer.
func (s *Writer) WriteDone() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return s.write(doneFrame)
}

// WriteError writes a terminal error frame and closes the writer.
func (s *Writer) WriteError(message string) error {
	if s.closed {
		return ErrClosed
	}
	data, err := json.Marshal(ErrorPayload{Error: ErrorDetail{Message: message, Type: "upstream_error"}})
	if err != nil {
		return fmt.Errorf("sse: marshal error frame: %w", err)
	}
	s.closed = true
	return s.write("data: " + string(data) + "\n\n")
}

// Closed reports whether a terminal frame has been written.
func (s *Writer) Closed() bool { return s.closed }

func (s *Writer) write(frame string) error {
	if _, err := io.WriteString(s.w, frame); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}
	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
