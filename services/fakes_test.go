package services

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/models"
	"gorm.io/gorm"
)

// fakeProjectStore keeps projects in memory and counts list queries.
type fakeProjectStore struct {
	mu        sync.Mutex
	projects  map[uuid.UUID]*models.Project
	listCalls int
	updates   int
	failOn    map[uuid.UUID]error

	// afterList runs once, after the next list query has read its rows.
	afterList func()
}

func newFakeProjectStore(projects ...*models.Project) *fakeProjectStore {
	s := &fakeProjectStore{projects: map[uuid.UUID]*models.Project{}, failOn: map[uuid.UUID]error{}}
	for _, p := range projects {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		s.projects[p.ID] = p
	}
	return s
}

func (s *fakeProjectStore) filter(keep func(*models.Project) bool) []*models.Project {
	out, hook := s.snapshot(keep)
	if hook != nil {
		hook()
	}
	return out
}

func (s *fakeProjectStore) snapshot(keep func(*models.Project) bool) ([]*models.Project, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	hook := s.afterList
	s.afterList = nil

	var out []*models.Project
	for _, p := range s.projects {
		if keep(p) {
			clone := *p
			out = append(out, &clone)
		}
	}
	slices.SortFunc(out, func(a, b *models.Project) int {
		if d := a.EffectiveSortOrder() - b.EffectiveSortOrder(); d != 0 {
			return d
		}
		return strings.Compare(a.Title, b.Title)
	})
	return out, hook
}

func (s *fakeProjectStore) FindAll(context.Context) ([]*models.Project, error) {
	return s.filter(func(*models.Project) bool { return true }), nil
}

func (s *fakeProjectStore) FindFeatured(context.Context) ([]*models.Project, error) {
	return s.filter(func(p *models.Project) bool { return p.Featured() }), nil
}

func (s *fakeProjectStore) FindByCategory(_ context.Context, category string) ([]*models.Project, error) {
	return s.filter(func(p *models.Project) bool { return p.Category != nil && *p.Category == category }), nil
}

func (s *fakeProjectStore) FindByTool(_ context.Context, tool string) ([]*models.Project, error) {
	return s.filter(func(p *models.Project) bool { return slices.Contains(p.Tools, tool) }), nil
}

func (s *fakeProjectStore) Search(_ context.Context, query string) ([]*models.Project, error) {
	q := strings.ToLower(query)
	return s.filter(func(p *models.Project) bool {
		return strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q)
	}), nil
}

func (s *fakeProjectStore) FindByID(_ context.Context, id uuid.UUID) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *fakeProjectStore) FindLegacy(_ context.Context, _ int) ([]*models.Project, error) {
	return s.filter(func(p *models.Project) bool { return p.IsLegacy() }), nil
}

func (s *fakeProjectStore) Add(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	project.ID = uuid.New()
	clone := *project
	s.projects[project.ID] = &clone
	return nil
}

func (s *fakeProjectStore) Update(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failOn[project.ID]; err != nil {
		return err
	}
	if _, ok := s.projects[project.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.updates++
	clone := *project
	s.projects[project.ID] = &clone
	return nil
}

func (s *fakeProjectStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *fakeProjectStore) DeleteAll(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := int64(len(s.projects))
	s.projects = map[uuid.UUID]*models.Project{}
	return n, nil
}

// fakeCatalogStore is an in-memory CatalogStore.
type fakeCatalogStore[T any, PT interface {
	*T
	models.CatalogEntry
}] struct {
	items   map[uuid.UUID]*T
	addErr  error
	batches int
}

func newFakeCatalogStore[T any, PT interface {
	*T
	models.CatalogEntry
}]() *fakeCatalogStore[T, PT] {
	return &fakeCatalogStore[T, PT]{items: map[uuid.UUID]*T{}}
}

func (s *fakeCatalogStore[T, PT]) Entity() string { return "skill" }

func (s *fakeCatalogStore[T, PT]) FindAll(context.Context) ([]*T, error) {
	var out []*T
	for _, item := range s.items {
		out = append(out, item)
	}
	return out, nil
}

func (s *fakeCatalogStore[T, PT]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (s *fakeCatalogStore[T, PT]) Add(_ context.Context, item *T) error {
	if s.addErr != nil {
		return s.addErr
	}
	rec := PT(item).GetRecord()
	rec.ID = uuid.New()
	PT(item).SetRecord(rec)
	clone := *item
	s.items[rec.ID] = &clone
	return nil
}

func (s *fakeCatalogStore[T, PT]) AddMany(ctx context.Context, items []*T) error {
	s.batches++
	for _, item := range items {
		if err := s.Add(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeCatalogStore[T, PT]) Update(_ context.Context, item *T) error {
	id := PT(item).GetRecord().ID
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *item
	s.items[id] = &clone
	return nil
}

func (s *fakeCatalogStore[T, PT]) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}
