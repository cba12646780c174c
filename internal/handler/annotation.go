package handler

import (
	"log/slog"
	"net/http"

	docsystem "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/services"
	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/httputil"
)

// AnnotationHandler handles annotation HTTP requests
type AnnotationHandler struct {
	annotationService docsysSvc.AnnotationService
	authorizer        services.ResourceAuthorizer
	logger            *slog.Logger
}

// NewAnnotationHandler creates a new annotation handler
func NewAnnotationHandler(annotationService docsysSvc.AnnotationService, authorizer services.ResourceAuthorizer, logger *slog.Logger) *AnnotationHandler {
	return &AnnotationHandler{
		annotationService: annotationService,
		authorizer:        authorizer,
		logger:            logger,
	}
}

// ListAnnotations lists annotations, optionally for one page
// GET /api/documents/{id}/annotations?page=N
func (h *AnnotationHandler) ListAnnotations(w http.ResponseWriter, r *http.Request) {
	docID, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return
	}

	page, err := httputil.QueryInt(r, "page", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	annotations, err := h.annotationService.ListAnnotations(r.Context(), docID, page)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, annotations)
}

// AddAnnotation adds an annotation; viewers may annotate
// POST /api/documents/{id}/annotations
func (h *AnnotationHandler) AddAnnotation(w http.ResponseWriter, r *http.Request) {
	docID, ok := h.authorize(w, r, docsystem.PermissionView)
	if !ok {
		return
	}

	var req docsysSvc.AddAnnotationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.CreatedBy = httputil.GetUserID(r)

	annotation, err := h.annotationService.AddAnnotation(r.Context(), docID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, annotation)
}

// RemoveAnnotation removes an annotation
// DELETE /api/documents/{id}/annotations/{annotationId}
func (h *AnnotationHandler) RemoveAnnotation(w http.ResponseWriter, r *http.Request) {
	docID, ok := h.authorize(w, r, docsystem.PermissionEdit)
	if !ok {
		return
	}
	annotationID, ok := pathID(w, r, "annotationId", "Annotation ID")
	if !ok {
		return
	}

	removed, err := h.annotationService.RemoveAnnotation(r.Context(), docID, annotationID)
	if err != nil {
		handleError(w, err)
		return
	}

	deleted(w, removed)
}

func (h *AnnotationHandler) authorize(w http.ResponseWriter, r *http.Request, level docsystem.PermissionLevel) (string, bool) {
	docID, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return "", false
	}
	if err := h.authorizer.CanAccessDocument(r.Context(), httputil.GetUserID(r), docID, level); err != nil {
		handleError(w, err)
		return "", false
	}
	return docID, true
}
