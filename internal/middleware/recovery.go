package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"docvault/internal/httputil"
)

// startTracker remembers whether any part of the response went out
type startTracker struct {
	http.ResponseWriter
	started bool
}

func (t *startTracker) WriteHeader(status int) {
	t.started = true
	t.ResponseWriter.WriteHeader(status)
}

func (t *startTracker) Write(b []byte) (int, error) {
	t.started = true
	return t.ResponseWriter.Write(b)
}

func (t *startTracker) Flush() {
	if f, ok := t.ResponseWriter.(http.Flusher); ok {
		t.started = true
		f.Flush()
	}
}

func (t *startTracker) Unwrap() http.ResponseWriter {
	return t.ResponseWriter
}

// Recovery turns a handler panic into a 500 problem response.
//
// Once a response has started (an upload event stream, a content download)
// no status can be sent anymore; the panic is only logged and the handler's
// partial output stands. http.ErrAbortHandler is re-raised so the server
// drops the connection as intended.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker := &startTracker{ResponseWriter: w}

			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				logger.Error("panic recovered",
					"error", recovered,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", httputil.GetUserID(r),
					"response_started", tracker.started,
					"stack", string(debug.Stack()),
				)

				if !tracker.started {
					httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(tracker, r)
		})
	}
}
