package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	docsystem "docvault/internal/domain/models/docsystem"
	"docvault/internal/domain/services"
	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/httputil"
	"docvault/internal/service/textsearch"
)

// multipartOverhead is allowed on top of the file size for form fields and boundaries
const multipartOverhead = 1 << 20

// multipartMemory is how much of a form is buffered in memory before spilling to disk
const multipartMemory = 32 << 20

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService     docsysSvc.DocumentService
	queryService   docsysSvc.QueryService
	uploads        docsysSvc.UploadService
	authorizer     services.ResourceAuthorizer
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(
	docService docsysSvc.DocumentService,
	queryService docsysSvc.QueryService,
	uploads docsysSvc.UploadService,
	authorizer services.ResourceAuthorizer,
	maxUploadBytes int64,
	logger *slog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		docService:     docService,
		queryService:   queryService,
		uploads:        uploads,
		authorizer:     authorizer,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// UploadResponse pairs the stored entity with the final upload status
type UploadResponse struct {
	Document *docsystem.Document        `json:"document,omitempty"`
	Version  *docsystem.DocumentVersion `json:"version,omitempty"`
	Upload   *docsystem.UploadStatus    `json:"upload"`
}

type updateDocumentBody struct {
	Name     *string                 `json:"name"`
	FolderID httputil.OptionalString `json:"folder_id"`
	TagIDs   *[]string               `json:"tag_ids"`
	Content  *string                 `json:"content"`
}

type setPagesBody struct {
	Pages map[int]string `json:"pages"`
}

type viewerSearchBody struct {
	Keyword string `json:"keyword"`
	// Index selects the match to render; it wraps like the viewer's next button
	Index int `json:"index"`
}

// HealthCheck reports that the server is up
// GET /health
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListDocuments lists the documents directly inside a folder
// GET /api/documents?folder_id=...
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.queryService.DocumentsInFolder(r.Context(), httputil.QueryOptional(r, "folder_id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// CreateDocument uploads a file and stores it as a new document
// POST /api/documents (multipart/form-data)
//
// Form fields:
//   - file: required
//   - name, folder_id, notes: optional
//   - tag_ids: optional, repeated or comma-separated
//   - upload_id: optional session from POST /api/uploads to report progress on
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	file, header, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	req := docsysSvc.CreateDocumentRequest{
		OwnerID: userID,
		Name:    strings.TrimSpace(r.FormValue("name")),
		Notes:   r.FormValue("notes"),
		TagIDs:  formList(r, "tag_ids"),
	}
	if r.MultipartForm != nil {
		if _, ok := r.MultipartForm.Value["folder_id"]; ok {
			folderID := r.FormValue("folder_id")
			req.FolderID = &folderID
		}
	}

	var created *docsystem.Document
	commit := func(ctx context.Context, rf *docsysSvc.ReceivedFile) (string, error) {
		req.Filename = rf.Filename
		req.Data = rf.Data
		doc, err := h.docService.CreateDocument(ctx, &req)
		if err != nil {
			return "", err
		}
		created = doc
		return doc.ID, nil
	}

	status, err := h.receive(r, header, file, commit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, UploadResponse{Document: created, Upload: status})
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument renames, moves, retags or replaces the text of a document
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, docsystem.PermissionEdit)
	if !ok {
		return
	}

	var body updateDocumentBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.UpdateDocument(r.Context(), id, &docsysSvc.UpdateDocumentRequest{
		Name: body.Name,
		FolderID: docsysSvc.OptionalFolderID{
			Present: body.FolderID.Present,
			Value:   body.FolderID.Value,
		},
		TagIDs:  body.TagIDs,
		Content: body.Content,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument deletes a document with all of its versions
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, docsystem.PermissionAdmin)
	if !ok {
		return
	}

	existed, err := h.docService.DeleteDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	deleted(w, existed)
}

// SearchDocuments searches documents by text or by tag ("tag:<name>")
// GET /api/documents/search
//
// Query parameters:
//   - q: the query; blank returns no results
//   - folder_id: optional, only documents directly in this folder
//   - fields: optional, comma-separated (name, content)
//   - limit, offset: optional pagination
func (h *DocumentHandler) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := httputil.QueryInt(r, "offset", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := &docsystem.SearchOptions{
		Query:    r.URL.Query().Get("q"),
		FolderID: httputil.QueryOptional(r, "folder_id"),
		Limit:    limit,
		Offset:   offset,
	}
	for _, field := range httputil.QueryList(r, "fields") {
		opts.Fields = append(opts.Fields, docsystem.SearchField(field))
	}

	results, err := h.queryService.Search(r.Context(), opts)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// GetContent streams the raw bytes of the current or a given version
// GET /api/documents/{id}/content?version=N
func (h *DocumentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, docsystem.PermissionDownload)
	if !ok {
		return
	}

	version, err := httputil.QueryInt(r, "version", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	blob, err := h.docService.GetContent(r.Context(), id, version)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondBlob(w, blob.MimeType, doc.Name, blob.Data)
}

// ListVersions returns the version history, oldest first
// GET /api/documents/{id}/versions
func (h *DocumentHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return
	}

	versions, err := h.docService.ListVersions(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// AddVersion uploads new content as the next version
// POST /api/documents/{id}/versions (multipart/form-data: file, notes, upload_id)
func (h *DocumentHandler) AddVersion(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, docsystem.PermissionEdit)
	if !ok {
		return
	}

	file, header, ok := h.parseUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	var version *docsystem.DocumentVersion
	commit := func(ctx context.Context, rf *docsysSvc.ReceivedFile) (string, error) {
		v, err := h.docService.AddVersion(ctx, id, &docsysSvc.AddVersionRequest{
			CreatedBy: httputil.GetUserID(r),
			Filename:  rf.Filename,
			Notes:     r.FormValue("notes"),
			Data:      rf.Data,
		})
		if err != nil {
			return "", err
		}
		version = v
		return id, nil
	}

	status, err := h.receive(r, header, file, commit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, UploadResponse{Version: version, Upload: status})
}

// SetPages stores per-page extracted text
// PUT /api/documents/{id}/pages
func (h *DocumentHandler) SetPages(w http.ResponseWriter, r *http.Request) {
	id, ok := h.authorize(w, r, docsystem.PermissionEdit)
	if !ok {
		return
	}

	var body setPagesBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.SetPageText(r.Context(), id, body.Pages)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// ViewerSearch finds the pages containing a keyword and renders one of them
// with highlighted matches
// POST /api/documents/{id}/viewer/search
func (h *DocumentHandler) ViewerSearch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return
	}

	var body viewerSearchBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	session := textsearch.NewSession(doc.Pages)
	session.Search(body.Keyword)
	nav := session.Navigator()
	if nav.Len() > 0 {
		steps := ((body.Index % nav.Len()) + nav.Len()) % nav.Len()
		for range steps {
			nav.Next()
		}
	}

	httputil.RespondJSON(w, http.StatusOK, session.Result())
}

// authorize reads the document id and checks the acting user's level on it
func (h *DocumentHandler) authorize(w http.ResponseWriter, r *http.Request, level docsystem.PermissionLevel) (string, bool) {
	id, ok := pathID(w, r, "id", "Document ID")
	if !ok {
		return "", false
	}

	if err := h.authorizer.CanAccessDocument(r.Context(), httputil.GetUserID(r), id, level); err != nil {
		handleError(w, err)
		return "", false
	}
	return id, true
}

// parseUpload parses the multipart form and opens its "file" part
func (h *DocumentHandler) parseUpload(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.RespondError(w, http.StatusRequestEntityTooLarge,
				"upload exceeds "+strconv.FormatInt(h.maxUploadBytes, 10)+" bytes")
			return nil, nil, false
		}
		httputil.RespondError(w, http.StatusBadRequest, "Failed to parse multipart form")
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "No file provided")
		return nil, nil, false
	}
	return file, header, true
}

// receive hands the file to the upload tracker, which reports progress and
// runs commit once the whole file is read
func (h *DocumentHandler) receive(r *http.Request, header *multipart.FileHeader, file multipart.File, commit docsysSvc.CommitFn) (*docsystem.UploadStatus, error) {
	status, err := h.uploads.Receive(r.Context(), strings.TrimSpace(r.FormValue("upload_id")), docsysSvc.UploadedFile{
		Filename: filepath.Base(header.Filename),
		Size:     header.Size,
		Content:  file,
	}, commit)
	if err != nil {
		h.logger.Warn("upload rejected",
			"filename", header.Filename,
			"size", header.Size,
			"user_id", httputil.GetUserID(r),
			"error", err,
		)
		return status, err
	}
	return status, nil
}

// formList collects a repeated or comma-separated form field
func formList(r *http.Request, key string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	var out []string
	for _, raw := range r.MultipartForm.Value[key] {
		out = append(out, httputil.SplitList(raw)...)
	}
	return out
}
