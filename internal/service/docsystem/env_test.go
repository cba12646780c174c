package docsystem

import (
	"context"
	"io"
	"log/slog"
	"testing"

	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"
	"docvault/internal/repository/memory"
	"docvault/internal/service/docsystem/extractor"

	"github.com/stretchr/testify/require"
)

// testEnv is a fully wired in-memory stack with three users and one tag
type testEnv struct {
	store       *memory.Store
	docs        docsysSvc.DocumentService
	folders     docsysSvc.FolderService
	tags        docsysSvc.TagService
	access      docsysSvc.AccessService
	annotations docsysSvc.AnnotationService
	query       docsysSvc.QueryService
	tree        docsysSvc.TreeService

	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewStore(logger)
	docRepo := memory.NewDocumentRepository(store)
	folderRepo := memory.NewFolderRepository(store)
	tagRepo := memory.NewTagRepository(store)
	userRepo := memory.NewUserRepository(store)
	blobRepo := memory.NewBlobRepository(store)
	txManager := memory.NewTransactionManager(store)

	for _, u := range []models.User{
		{ID: "user-1", Name: "Demo User", Role: models.RoleAdmin},
		{ID: "user-2", Name: "Jane Smith", Role: models.RoleEditor},
		{ID: "user-3", Name: "Bob Johnson", Role: models.RoleViewer},
	} {
		require.NoError(t, userRepo.Create(ctx, &u))
	}
	require.NoError(t, tagRepo.Create(ctx, &models.Tag{ID: "t1", Name: "Important", Color: "#ef4444"}))

	validator := NewResourceValidator(folderRepo, tagRepo, userRepo)
	query := NewQueryService(docRepo, folderRepo, tagRepo, logger)

	return &testEnv{
		store:       store,
		docs:        NewDocumentService(docRepo, blobRepo, txManager, extractor.NewRegistry(), validator, logger),
		folders:     NewFolderService(folderRepo, docRepo, txManager, validator, logger),
		tags:        NewTagService(tagRepo, docRepo, txManager, logger),
		access:      NewAccessService(docRepo, userRepo, txManager, validator, logger),
		annotations: NewAnnotationService(docRepo, txManager, logger),
		query:       query,
		tree:        NewTreeService(folderRepo, docRepo, logger),
		folderRepo:  folderRepo,
		docRepo:     docRepo,
	}
}

func (e *testEnv) mkFolder(t *testing.T, name string, parent *string) *models.Folder {
	t.Helper()
	f, err := e.folders.CreateFolder(context.Background(), &docsysSvc.CreateFolderRequest{
		OwnerID:  "user-1",
		Name:     name,
		ParentID: parent,
	})
	require.NoError(t, err)
	return f
}

func (e *testEnv) mkDoc(t *testing.T, filename string, folderID *string, data string) *models.Document {
	t.Helper()
	d, err := e.docs.CreateDocument(context.Background(), &docsysSvc.CreateDocumentRequest{
		OwnerID:  "user-1",
		Filename: filename,
		FolderID: folderID,
		Data:     []byte(data),
	})
	require.NoError(t, err)
	return d
}

func ptr[T any](v T) *T { return &v }
