package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/errs"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rpupo63/video-portfolio-backend/normalize"
	"gorm.io/datatypes"
)

// ProjectStore is the persistence the project service needs.
// *database.ProjectRepo implements it.
type ProjectStore interface {
	FindAll(ctx context.Context) ([]*models.Project, error)
	FindFeatured(ctx context.Context) ([]*models.Project, error)
	FindByCategory(ctx context.Context, category string) ([]*models.Project, error)
	FindByTool(ctx context.Context, tool string) ([]*models.Project, error)
	Search(ctx context.Context, query string) ([]*models.Project, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	Add(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

// ProjectService coerces project writes into canonical records and returns
// every read in the normalized response shape.
type ProjectService struct {
	store ProjectStore
	cache *listCache
}

// NewProjectService returns a service over store. Normalized lists are cached
// for cacheTTL in an LRU of cacheSize entries; a zero size disables caching.
func NewProjectService(store ProjectStore, cacheSize int, cacheTTL time.Duration) *ProjectService {
	return &ProjectService{
		store: store,
		cache: newListCache(cacheSize, cacheTTL),
	}
}

func (s *ProjectService) list(ctx context.Context, key string, find func(context.Context) ([]*models.Project, error)) ([]normalize.ProjectResponse, error) {
	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	generation := s.cache.current()
	projects, err := find(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "projects", err)
	}

	normalized := normalize.NormalizeProjects(projects)
	s.cache.set(key, normalized, generation)
	return normalized, nil
}

// List returns every project in display order.
func (s *ProjectService) List(ctx context.Context) ([]normalize.ProjectResponse, error) {
	return s.list(ctx, "all", s.store.FindAll)
}

// Featured returns the featured projects in display order.
func (s *ProjectService) Featured(ctx context.Context) ([]normalize.ProjectResponse, error) {
	return s.list(ctx, "featured", s.store.FindFeatured)
}

// ByCategory returns the projects with exactly the given category.
func (s *ProjectService) ByCategory(ctx context.Context, category string) ([]normalize.ProjectResponse, error) {
	return s.list(ctx, "category:"+category, func(ctx context.Context) ([]*models.Project, error) {
		return s.store.FindByCategory(ctx, category)
	})
}

// ByTool returns the projects that list tool.
func (s *ProjectService) ByTool(ctx context.Context, tool string) ([]normalize.ProjectResponse, error) {
	return s.list(ctx, "tool:"+tool, func(ctx context.Context) ([]*models.Project, error) {
		return s.store.FindByTool(ctx, tool)
	})
}

// Search matches query against title, description and tools.
func (s *ProjectService) Search(ctx context.Context, query string) ([]normalize.ProjectResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.NewMissingRequiredFieldError("q")
	}
	return s.list(ctx, "search:"+strings.ToLower(query), func(ctx context.Context) ([]*models.Project, error) {
		return s.store.Search(ctx, query)
	})
}

// Get returns one project.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*normalize.ProjectResponse, error) {
	project, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	return normalize.NormalizeProject(project), nil
}

// Create stores a new project built from a create payload.
func (s *ProjectService) Create(ctx context.Context, in normalize.ProjectInput) (*normalize.ProjectResponse, error) {
	patch, err := coerce(in)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		IsFeatured: ptr(true),
		SortOrder:  ptr(0),
		Tools:      datatypes.JSONSlice[string]{},
	}
	patch.ApplyTo(project)

	if err := prepareProject(project); err != nil {
		return nil, err
	}
	if err := s.store.Add(ctx, project); err != nil {
		return nil, errs.NewDatabaseError("create", "project", err)
	}

	s.cache.purge()
	return normalize.NormalizeProject(project), nil
}

// Update applies a partial payload to an existing project. Only supplied
// fields change; the result must still be a valid canonical record.
func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, in normalize.ProjectInput) (*normalize.ProjectResponse, error) {
	patch, err := coerce(in)
	if err != nil {
		return nil, err
	}

	project, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "project", err)
	}
	patch.ApplyTo(project)

	if err := prepareProject(project); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, project); err != nil {
		return nil, errs.NewDatabaseError("update", "project", err)
	}

	s.cache.purge()
	return normalize.NormalizeProject(project), nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "project", err)
	}
	s.cache.purge()
	return nil
}

// DeleteAll removes every project and reports how many rows went.
func (s *ProjectService) DeleteAll(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, errs.NewDatabaseError("delete", "projects", err)
	}
	s.cache.purge()
	return deleted, nil
}

func coerce(in normalize.ProjectInput) (normalize.ProjectPatch, error) {
	patch := normalize.CoerceProjectInput(in)
	if field, raw, ok := patch.FirstUnresolved(); ok {
		return patch, errs.NewInvalidFieldError(field, fmt.Sprintf("cannot interpret %q", raw))
	}
	return patch, nil
}

func prepareProject(project *models.Project) error {
	project.Prepare()
	return models.Validate(project)
}

func ptr[T any](v T) *T {
	return &v
}
