package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService docsysSvc.FolderService
	queryService  docsysSvc.QueryService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService docsysSvc.FolderService, queryService docsysSvc.QueryService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		queryService:  queryService,
		logger:        logger,
	}
}

// updateFolderBody distinguishes an absent parent_id from an explicit null
type updateFolderBody struct {
	Name     *string                 `json:"name"`
	ParentID httputil.OptionalString `json:"parent_id"`
}

// ListChildren lists the folders and documents directly inside a folder
// GET /api/folders?parent_id=...
// A missing parent_id (or "root") lists the top level.
func (h *FolderHandler) ListChildren(w http.ResponseWriter, r *http.Request) {
	contents, err := h.folderService.ListChildren(r.Context(), httputil.QueryOptional(r, "parent_id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = httputil.GetUserID(r)

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// UpdateFolder renames and/or moves a folder
// PATCH /api/folders/{id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	var body updateFolderBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := h.folderService.UpdateFolder(r.Context(), id, &docsysSvc.UpdateFolderRequest{
		Name: body.Name,
		ParentID: docsysSvc.OptionalFolderID{
			Present: body.ParentID.Present,
			Value:   body.ParentID.Value,
		},
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and its subfolders; contained documents move to root
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	existed, err := h.folderService.DeleteFolder(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	deleted(w, existed)
}

// Breadcrumbs returns the root-first ancestor chain of a folder
// GET /api/folders/{id}/breadcrumbs
func (h *FolderHandler) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Folder ID")
	if !ok {
		return
	}

	crumbs, err := h.queryService.Breadcrumbs(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, crumbs)
}
