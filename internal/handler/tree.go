package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService docsysSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService docsysSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the nested folder/document tree
// GET /api/tree
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.treeService.GetTree(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}
