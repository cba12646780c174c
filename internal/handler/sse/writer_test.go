package sse

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec, "up-1")
	require.NoError(t, err)

	require.NoError(t, w.WriteEvent("status", map[string]int{"percent": 40}))
	require.NoError(t, w.WriteKeepAlive())

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "event: status\ndata: {\"percent\":40}\n\n")
	assert.True(t, strings.HasSuffix(body, ": keepalive\n\n"))
}

func TestWriter_WriteRetry(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec, "up-1")
	require.NoError(t, err)

	require.NoError(t, w.WriteRetry(DefaultConfig().RetryInterval))

	assert.Equal(t, "retry: 2000\n\n", rec.Body.String())
}

type countingWriter struct{ n atomic.Int32 }

func (c *countingWriter) WriteKeepAlive() error {
	c.n.Add(1)
	return nil
}

func TestTickerKeepAlive_StopsOnStop(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	writer := &countingWriter{}
	k := NewTickerKeepAlive(5 * time.Millisecond)

	stopped := k.Start(writer, logger)
	assert.Eventually(t, func() bool { return writer.n.Load() > 0 }, time.Second, 5*time.Millisecond)

	k.Stop()
	k.Stop()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("keep-alive did not stop")
	}
}
