package handler

import (
	"log/slog"
	"net/http"
	"strings"

	docsystem "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/services"
	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/httputil"
)

// AccessHandler handles document sharing and permission checks
type AccessHandler struct {
	accessService docsysSvc.AccessService
	queryService  docsysSvc.QueryService
	authorizer    services.ResourceAuthorizer
	logger        *slog.Logger
}

// NewAccessHandler creates a new access handler
func NewAccessHandler(
	accessService docsysSvc.AccessService,
	queryService docsysSvc.QueryService,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) *AccessHandler {
	return &AccessHandler{
		accessService: accessService,
		queryService:  queryService,
		authorizer:    authorizer,
		logger:        logger,
	}
}

type setAccessBody struct {
	Level string `json:"permission_level"`
}

// PermissionCheck is the answer of the access check endpoint
type PermissionCheck struct {
	DocumentID string                    `json:"document_id"`
	UserID     string                    `json:"user_id"`
	Level      docsystem.PermissionLevel `json:"permission_level"`
	Allowed    bool                      `json:"allowed"`
}

// SetAccess grants or changes a user's level on a document
// PUT /api/documents/{id}/access/{userId}
func (h *AccessHandler) SetAccess(w http.ResponseWriter, r *http.Request) {
	docID, targetID, ok := h.authorizeAdmin(w, r)
	if !ok {
		return
	}

	var body setAccessBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := docsystem.ParsePermissionLevel(body.Level)
	if err != nil {
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), map[string]interface{}{
			"field": "permission_level",
		})
		return
	}

	entries, err := h.accessService.SetAccess(r.Context(), docID, targetID, level)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// RemoveAccess revokes a user's entry on a document
// DELETE /api/documents/{id}/access/{userId}
func (h *AccessHandler) RemoveAccess(w http.ResponseWriter, r *http.Request) {
	docID, targetID, ok := h.authorizeAdmin(w, r)
	if !ok {
		return
	}

	removed, err := h.accessService.RemoveAccess(r.Context(), docID, targetID)
	if err != nil {
		handleError(w, err)
		return
	}

	deleted(w, removed)
}

// CheckAccess answers whether a user holds at least a level on a document
// GET /api/documents/{id}/access/check?level=edit&user_id=...
// user_id defaults to the acting user.
func (h *AccessHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	docID, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return
	}

	level, err := docsystem.ParsePermissionLevel(r.URL.Query().Get("level"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		userID = httputil.GetUserID(r)
	}

	allowed, err := h.queryService.HasPermission(r.Context(), docID, userID, level)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, PermissionCheck{
		DocumentID: docID,
		UserID:     userID,
		Level:      level,
		Allowed:    allowed,
	})
}

// ListUsers returns the known user set
// GET /api/users
func (h *AccessHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.accessService.ListUsers(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, users)
}

func (h *AccessHandler) authorizeAdmin(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	docID, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return "", "", false
	}
	targetID, ok := pathID(w, r, "userId", "User ID")
	if !ok {
		return "", "", false
	}

	if err := h.authorizer.CanAccessDocument(r.Context(), httputil.GetUserID(r), docID, docsystem.PermissionAdmin); err != nil {
		handleError(w, err)
		return "", "", false
	}
	return docID, targetID, true
}
