package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/httputil"
)

// TagHandler handles the global tag catalog
type TagHandler struct {
	tagService docsysSvc.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService docsysSvc.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// ListTags GET /api/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tags)
}

// CreateTag POST /api/tags
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateTagRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, tag)
}

// DeleteTag removes a tag from the catalog and from every document
// DELETE /api/tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Tag ID")
	if !ok {
		return
	}

	existed, err := h.tagService.DeleteTag(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	deleted(w, existed)
}
