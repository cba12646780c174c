package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"docvault/internal/domain"
	models "docvault/internal/domain/models/docsystem"
	docsysRepo "docvault/internal/domain/repositories/docsystem"
	docsysSvc "docvault/internal/domain/services/docsystem"
)

// queryService derives views from the repositories on every call
type queryService struct {
	docRepo    docsysRepo.DocumentRepository
	folderRepo docsysRepo.FolderRepository
	tagRepo    docsysRepo.TagRepository
	logger     *slog.Logger
}

// NewQueryService creates a new query service
func NewQueryService(
	docRepo docsysRepo.DocumentRepository,
	folderRepo docsysRepo.FolderRepository,
	tagRepo docsysRepo.TagRepository,
	logger *slog.Logger,
) docsysSvc.QueryService {
	return &queryService{
		docRepo:    docRepo,
		folderRepo: folderRepo,
		tagRepo:    tagRepo,
		logger:     logger,
	}
}

func (s *queryService) DocumentsInFolder(ctx context.Context, folderID *string) ([]models.Document, error) {
	docs, err := s.docRepo.ListByFolder(ctx, models.NormalizeFolderID(folderID))
	if err != nil {
		return nil, err
	}
	if err := s.resolveAll(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *queryService) Subfolders(ctx context.Context, parentID *string) ([]models.Folder, error) {
	return s.folderRepo.ListChildren(ctx, models.NormalizeFolderID(parentID))
}

// Breadcrumbs walks the parent chain up from folderID. The walk stops at a
// dangling parent or at a folder it has already visited, so a broken chain
// yields a shorter trail instead of an error. An unknown folder yields none.
func (s *queryService) Breadcrumbs(ctx context.Context, folderID string) ([]models.Breadcrumb, error) {
	crumbs := []models.Breadcrumb{}
	if models.NormalizeFolderID(&folderID) == nil {
		return crumbs, nil
	}

	all, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Folder, len(all))
	for _, f := range all {
		byID[f.ID] = f
	}

	visited := make(map[string]struct{})
	currentID := folderID
	for {
		folder, ok := byID[currentID]
		if !ok {
			if currentID != folderID {
				s.logger.Warn("dangling folder parent", "folder_id", folderID, "missing_parent_id", currentID)
			}
			break
		}
		if _, seen := visited[currentID]; seen {
			s.logger.Warn("folder cycle in breadcrumbs", "folder_id", folderID, "revisited_id", currentID)
			break
		}
		visited[currentID] = struct{}{}
		crumbs = append(crumbs, models.Breadcrumb{ID: folder.ID, Name: folder.Name})

		if folder.ParentID == nil {
			break
		}
		currentID = *folder.ParentID
	}

	// Reverse to root-first order
	for i, j := 0, len(crumbs)-1; i < j; i, j = i+1, j-1 {
		crumbs[i], crumbs[j] = crumbs[j], crumbs[i]
	}
	return crumbs, nil
}

// Search matches documents in store order. A "tag:" query compares tag
// names (never ids); any other query compares the name and extracted text.
func (s *queryService) Search(ctx context.Context, opts *models.SearchOptions) (*models.SearchResults, error) {
	opts.ApplyDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	query := models.ParseQuery(opts.Query)
	if !query.Active() {
		return models.NewSearchResults(nil, 0, query.Mode, opts), nil
	}

	var docs []models.Document
	var err error
	if folderID := models.NormalizeFolderID(opts.FolderID); folderID != nil {
		docs, err = s.docRepo.ListByFolder(ctx, folderID)
	} else {
		docs, err = s.docRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	if err := s.resolveAll(ctx, docs); err != nil {
		return nil, err
	}

	var matches []models.SearchResult
	for _, doc := range docs {
		var matchedOn []models.SearchField
		if query.Mode == models.SearchModeTag {
			matchedOn = matchTags(doc, query.Term)
		} else {
			matchedOn = matchText(doc, query.Term, opts.Fields)
		}
		if len(matchedOn) > 0 {
			matches = append(matches, models.SearchResult{Document: doc, MatchedOn: matchedOn})
		}
	}

	total := len(matches)
	start := min(opts.Offset, total)
	end := min(start+opts.Limit, total)
	page := matches[start:end]

	s.logger.Debug("search executed",
		"query", opts.Query,
		"mode", query.Mode,
		"total", total,
		"returned", len(page),
	)

	return models.NewSearchResults(page, total, query.Mode, opts), nil
}

func matchTags(doc models.Document, term string) []models.SearchField {
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag.Name), term) {
			return []models.SearchField{models.SearchFieldTag}
		}
	}
	return nil
}

func matchText(doc models.Document, term string, fields []models.SearchField) []models.SearchField {
	var matched []models.SearchField
	for _, field := range fields {
		switch field {
		case models.SearchFieldName:
			if strings.Contains(strings.ToLower(doc.Name), term) {
				matched = append(matched, field)
			}
		case models.SearchFieldContent:
			if doc.Content != "" && strings.Contains(strings.ToLower(doc.Content), term) {
				matched = append(matched, field)
			}
		}
	}
	return matched
}

// HasPermission is true for the owner and for users whose recorded level
// ranks at least level. Users without an entry hold none.
func (s *queryService) HasPermission(ctx context.Context, documentID, userID string, level models.PermissionLevel) (bool, error) {
	if !level.Valid() {
		return false, domain.NewValidation("level", "unknown permission level %q", level)
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if doc.OwnerID == userID {
		return true, nil
	}

	held := models.PermissionNone
	if entry, ok := doc.AccessFor(userID); ok {
		held = entry.Level
	}
	return held.AtLeast(level), nil
}

func (s *queryService) resolveAll(ctx context.Context, docs []models.Document) error {
	tags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("resolve tags: %w", err)
	}
	byID := indexTags(tags)
	for i := range docs {
		resolveTags(&docs[i], byID)
	}
	return nil
}
