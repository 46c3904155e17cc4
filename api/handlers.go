package api

import (
	"github.com/rpupo63/video-portfolio-backend/config"
	"github.com/rpupo63/video-portfolio-backend/database"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rpupo63/video-portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, c map[string]string) *routeHandlers {
	projects := services.NewProjectService(
		db.ProjectRepo(),
		config.GetInt(c, "CACHE_SIZE", 128),
		config.GetSeconds(c, "CACHE_TTL_SECONDS", 60),
	)

	return newRouteHandlers(
		projects,
		services.NewCatalogService[models.Skill, *models.Skill](db.SkillRepo()),
		services.NewCatalogService[models.Tool, *models.Tool](db.ToolRepo()),
		services.NewCatalogService[models.Experience, *models.Experience](db.ExperienceRepo()),
		services.NewCatalogService[models.Certificate, *models.Certificate](db.CertificateRepo()),
	)
}

func newRouteHandlers(
	projects *services.ProjectService,
	skills *services.CatalogService[models.Skill, *models.Skill],
	tools *services.CatalogService[models.Tool, *models.Tool],
	experiences *services.CatalogService[models.Experience, *models.Experience],
	certificates *services.CatalogService[models.Certificate, *models.Certificate],
) *routeHandlers {
	return &routeHandlers{
		projectHandler:     newProjectHandler(projects),
		skillHandler:       newCatalogHandler(skills),
		toolHandler:        newCatalogHandler(tools),
		experienceHandler:  newCatalogHandler(experiences),
		certificateHandler: newCatalogHandler(certificates),
	}
}
