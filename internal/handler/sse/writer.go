package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Writer serializes SSE frames for one upload stream. Events and keep-alive
// comments come from different goroutines, so writes are guarded.
type Writer struct {
	mu       sync.Mutex
	w        http.ResponseWriter
	flusher  http.Flusher
	uploadID string
}

// NewWriter sets the SSE headers and returns a writer. It fails when the
// response cannot be flushed.
func NewWriter(w http.ResponseWriter, uploadID string) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming unsupported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{w: w, flusher: flusher, uploadID: uploadID}, nil
}

// WriteEvent writes one named event with a JSON payload and flushes it
func (s *Writer) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event for upload %s: %w", event, s.uploadID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("write %s event: %w", event, err)
	}
	s.flusher.Flush()
	return nil
}

// WriteRetry announces how long a client waits before reconnecting
func (s *Writer) WriteRetry(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "retry: %d\n\n", d.Milliseconds()); err != nil {
		return fmt.Errorf("write retry for upload %s: %w", s.uploadID, err)
	}
	s.flusher.Flush()
	return nil
}

// WriteKeepAlive writes an SSE comment line and flushes it.
// Lines starting with ':' are ignored by clients.
func (s *Writer) WriteKeepAlive() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprint(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive for upload %s: %w", s.uploadID, err)
	}
	s.flusher.Flush()
	return nil
}
