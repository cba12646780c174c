package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/handler/sse"
	"docvault/internal/httputil"
)

// Upload SSE event names
const (
	uploadStatusEvent = "status"
	uploadDoneEvent   = "done"
)

// UploadHandler exposes upload sessions and their progress stream
type UploadHandler struct {
	uploads   docsysSvc.UploadService
	sseConfig *sse.Config
	logger    *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploads docsysSvc.UploadService, sseConfig *sse.Config, logger *slog.Logger) *UploadHandler {
	if sseConfig == nil {
		sseConfig = sse.DefaultConfig()
	}
	return &UploadHandler{
		uploads:   uploads,
		sseConfig: sseConfig,
		logger:    logger,
	}
}

// CreateSession opens an idle upload session. Pass its id as upload_id when
// posting the file to follow progress on the events stream.
// POST /api/uploads
func (h *UploadHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	status, err := h.uploads.CreateSession(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, status)
}

// GetSession GET /api/uploads/{id}
func (h *UploadHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Upload ID")
	if !ok {
		return
	}

	status, err := h.uploads.GetSession(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, status)
}

// CancelSession cancels a session that has not finished. A cancel that
// arrives after the commit has no effect.
// DELETE /api/uploads/{id}
func (h *UploadHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Upload ID")
	if !ok {
		return
	}

	status, err := h.uploads.CancelSession(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, status)
}

// StreamEvents streams status changes as Server-Sent Events until the
// session reaches a terminal state or the client goes away
// GET /api/uploads/{id}/events
func (h *UploadHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Upload ID")
	if !ok {
		return
	}

	updates, unsubscribe, err := h.uploads.Subscribe(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer unsubscribe()

	writer, err := sse.NewWriter(w, id)
	if err != nil {
		httputil.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.sseConfig.RetryInterval > 0 {
		if err := writer.WriteRetry(h.sseConfig.RetryInterval); err != nil {
			h.logger.Info("client disconnected before first event", "upload_id", id, "error", err)
			return
		}
	}

	h.logger.Debug("upload stream established", "upload_id", id)

	keepAlive := sse.NewTickerKeepAlive(h.sseConfig.KeepAliveInterval)
	keepAliveStopped := keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	for {
		select {
		case status, ok := <-updates:
			if !ok {
				h.logger.Debug("upload stream finished", "upload_id", id)
				return
			}

			event := uploadStatusEvent
			if status.State.Terminal() {
				event = uploadDoneEvent
			}
			if err := writer.WriteEvent(event, status); err != nil {
				h.logger.Info("client disconnected during event write", "upload_id", id, "error", err)
				return
			}

		case <-keepAliveStopped:
			return

		case <-r.Context().Done():
			h.logger.Debug("upload stream client gone", "upload_id", id)
			return
		}
	}
}
