package handler

import "net/http"

// Handlers groups every HTTP handler of the server
type Handlers struct {
	Documents   *DocumentHandler
	Folders     *FolderHandler
	Tree        *TreeHandler
	Tags        *TagHandler
	Access      *AccessHandler
	Annotations *AnnotationHandler
	Uploads     *UploadHandler
}

// Register adds all routes to mux (Go 1.22+ enhanced patterns)
func (h *Handlers) Register(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /health", h.Documents.HealthCheck)

	// Tree
	mux.HandleFunc("GET /api/tree", h.Tree.GetTree)

	// Folder routes
	mux.HandleFunc("GET /api/folders", h.Folders.ListChildren)
	mux.HandleFunc("POST /api/folders", h.Folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", h.Folders.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", h.Folders.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", h.Folders.DeleteFolder)
	mux.HandleFunc("GET /api/folders/{id}/breadcrumbs", h.Folders.Breadcrumbs)

	// Document routes
	mux.HandleFunc("GET /api/documents", h.Documents.ListDocuments)
	mux.HandleFunc("POST /api/documents", h.Documents.CreateDocument)
	mux.HandleFunc("GET /api/documents/search", h.Documents.SearchDocuments) // More specific than {id}
	mux.HandleFunc("GET /api/documents/{id}", h.Documents.GetDocument)
	mux.HandleFunc("PATCH /api/documents/{id}", h.Documents.UpdateDocument)
	mux.HandleFunc("DELETE /api/documents/{id}", h.Documents.DeleteDocument)
	mux.HandleFunc("GET /api/documents/{id}/content", h.Documents.GetContent)
	mux.HandleFunc("GET /api/documents/{id}/versions", h.Documents.ListVersions)
	mux.HandleFunc("POST /api/documents/{id}/versions", h.Documents.AddVersion)
	mux.HandleFunc("PUT /api/documents/{id}/pages", h.Documents.SetPages)
	mux.HandleFunc("POST /api/documents/{id}/viewer/search", h.Documents.ViewerSearch)

	// Sharing
	mux.HandleFunc("GET /api/documents/{id}/access/check", h.Access.CheckAccess)
	mux.HandleFunc("PUT /api/documents/{id}/access/{userId}", h.Access.SetAccess)
	mux.HandleFunc("DELETE /api/documents/{id}/access/{userId}", h.Access.RemoveAccess)
	mux.HandleFunc("GET /api/users", h.Access.ListUsers)

	// Annotations
	mux.HandleFunc("GET /api/documents/{id}/annotations", h.Annotations.ListAnnotations)
	mux.HandleFunc("POST /api/documents/{id}/annotations", h.Annotations.AddAnnotation)
	mux.HandleFunc("DELETE /api/documents/{id}/annotations/{annotationId}", h.Annotations.RemoveAnnotation)

	// Tags
	mux.HandleFunc("GET /api/tags", h.Tags.ListTags)
	mux.HandleFunc("POST /api/tags", h.Tags.CreateTag)
	mux.HandleFunc("DELETE /api/tags/{id}", h.Tags.DeleteTag)

	// Uploads
	mux.HandleFunc("POST /api/uploads", h.Uploads.CreateSession)
	mux.HandleFunc("GET /api/uploads/{id}", h.Uploads.GetSession)
	mux.HandleFunc("DELETE /api/uploads/{id}", h.Uploads.CancelSession)
	mux.HandleFunc("GET /api/uploads/{id}/events", h.Uploads.StreamEvents)
}
