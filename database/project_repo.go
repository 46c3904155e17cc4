package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// projectOrder puts rows without a sort order at 0 and legacy rows without a
// numeric year after dated ones.
const projectOrder = "COALESCE(sort_order, 0) ASC, year DESC NULLS LAST"

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

func (r *ProjectRepo) list(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Scopes(scopes...).Order(projectOrder).Find(&projects).Error
	return projects, err
}

// FindAll returns all projects in display order
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	return r.list(ctx)
}

// FindFeatured returns featured projects. Rows that never stored the flag count as featured.
func (r *ProjectRepo) FindFeatured(ctx context.Context) ([]*models.Project, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("is_featured IS NULL OR is_featured = ?", true)
	})
}

// FindByCategory returns projects with exactly the given category
func (r *ProjectRepo) FindByCategory(ctx context.Context, category string) ([]*models.Project, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	})
}

// FindByTool returns projects whose tools list contains tool
func (r *ProjectRepo) FindByTool(ctx context.Context, tool string) ([]*models.Project, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where(datatypes.JSONArrayQuery("tools").Contains(tool))
	})
}

// Search matches query case-insensitively against title, description and tools
func (r *ProjectRepo) Search(ctx context.Context, query string) ([]*models.Project, error) {
	pattern := "%" + escapeLike(query) + "%"
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("title ILIKE ? OR description ILIKE ? OR tools::text ILIKE ?", pattern, pattern, pattern)
	})
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindLegacy returns rows still missing a canonical column, oldest first.
// A limit of 0 returns every such row.
func (r *ProjectRepo) FindLegacy(ctx context.Context, limit int) ([]*models.Project, error) {
	query := r.db.WithContext(ctx).Scopes(models.LegacyRows).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var projects []*models.Project
	err := query.Find(&projects).Error
	return projects, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update writes every column of project, clearing legacy columns set to nil
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteAll removes every project and returns the number of rows deleted
func (r *ProjectRepo) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Project{})
	return result.RowsAffected, result.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
