package database

import (
	"context"

	"github.com/rpupo63/video-portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	projectRepo     *ProjectRepo
	skillRepo       *CatalogRepo[models.Skill]
	toolRepo        *CatalogRepo[models.Tool]
	experienceRepo  *CatalogRepo[models.Experience]
	certificateRepo *CatalogRepo[models.Certificate]
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:     NewProjectRepo(db),
		skillRepo:       NewCatalogRepo[models.Skill](db, "skill", "created_at ASC"),
		toolRepo:        NewCatalogRepo[models.Tool](db, "tool", "created_at ASC"),
		experienceRepo:  NewCatalogRepo[models.Experience](db, "experience", `"order" ASC, created_at ASC`),
		certificateRepo: NewCatalogRepo[models.Certificate](db, "certificate", `"order" ASC, created_at ASC`),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillRepo() *CatalogRepo[models.Skill] {
	return d.skillRepo
}

func (d Database) ToolRepo() *CatalogRepo[models.Tool] {
	return d.toolRepo
}

func (d Database) ExperienceRepo() *CatalogRepo[models.Experience] {
	return d.experienceRepo
}

func (d Database) CertificateRepo() *CatalogRepo[models.Certificate] {
	return d.certificateRepo
}

// Migrate creates or alters every table managed by the service. Existing
// legacy columns are kept; AutoMigrate never drops columns.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).AutoMigrate(models.All()...)
}
