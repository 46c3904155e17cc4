package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/video-portfolio-backend/errs"
	"github.com/rpupo63/video-portfolio-backend/normalize"
	"github.com/rpupo63/video-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  *services.ProjectService
}

func newProjectHandler(projects *services.ProjectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

// parseID reads a UUID path parameter.
func parseID(r *http.Request, param, entity string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidIdentifierError(entity, raw)
	}
	return id, nil
}

// listProjects writes the result of a list query
func (h projectHandler) listProjects(find func(r *http.Request) ([]normalize.ProjectResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := find(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// getAllProjects retrieves all projects
// @Summary Get all projects
// @Description Retrieves all projects ordered by sortOrder, then newest year first
// @Tags Projects
// @Produce json
// @Success 200 {array} normalize.ProjectResponse "Normalized projects"
// @Failure 500 {object} ErrorResponse "Internal Server Error"
// @Router /api/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return h.listProjects(func(r *http.Request) ([]normalize.ProjectResponse, error) {
		return h.projects.List(r.Context())
	})
}

// getFeaturedProjects retrieves featured projects
// @Summary Get featured projects
// @Tags Projects
// @Produce json
// @Success 200 {array} normalize.ProjectResponse "Normalized projects"
// @Router /api/projects/featured [get]
func (h projectHandler) getFeaturedProjects() http.HandlerFunc {
	return h.listProjects(func(r *http.Request) ([]normalize.ProjectResponse, error) {
		return h.projects.Featured(r.Context())
	})
}

// getProjectsByCategory retrieves projects in one category
// @Summary Get projects by category
// @Tags Projects
// @Produce json
// @Param category path string true "Category, e.g. Music Video"
// @Success 200 {array} normalize.ProjectResponse "Normalized projects"
// @Router /api/projects/category/{category} [get]
func (h projectHandler) getProjectsByCategory() http.HandlerFunc {
	return h.listProjects(func(r *http.Request) ([]normalize.ProjectResponse, error) {
		return h.projects.ByCategory(r.Context(), chi.URLParam(r, "category"))
	})
}

// getProjectsByTool retrieves projects that used a tool
// @Summary Get projects by tool
// @Tags Projects
// @Produce json
// @Param tool path string true "Tool name"
// @Success 200 {array} normalize.ProjectResponse "Normalized projects"
// @Router /api/projects/tool/{tool} [get]
func (h projectHandler) getProjectsByTool() http.HandlerFunc {
	return h.listProjects(func(r *http.Request) ([]normalize.ProjectResponse, error) {
		return h.projects.ByTool(r.Context(), chi.URLParam(r, "tool"))
	})
}

// searchProjects matches a query against title, description and tools
// @Summary Search projects
// @Tags Projects
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} normalize.ProjectResponse "Normalized projects"
// @Failure 400 {object} ErrorResponse "Search query is required"
// @Router /api/projects/search [get]
func (h projectHandler) searchProjects() http.HandlerFunc {
	return h.listProjects(func(r *http.Request) ([]normalize.ProjectResponse, error) {
		return h.projects.Search(r.Context(), r.URL.Query().Get("q"))
	})
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} normalize.ProjectResponse "Normalized project"
// @Failure 400 {object} ErrorResponse "Invalid project ID"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
// @Summary Create project
// @Description Accepts both current and legacy payloads (duration "m:ss", text year, youtubeId)
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body normalize.ProjectInput true "Project data"
// @Success 201 {object} normalize.ProjectResponse "Created project"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /api/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input normalize.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("projectID", project.ID).Str("subject", ctxGetSubject(r.Context())).Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject applies a partial update to a project
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID"
// @Param project body normalize.ProjectInput true "Fields to change"
// @Success 200 {object} normalize.ProjectResponse "Updated project"
// @Failure 400 {object} ErrorResponse "Invalid ID or validation failed"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [put]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input normalize.ProjectInput
		if err := decodeJSON(w, r, &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Update(r.Context(), id, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID"
// @Success 200 {object} map[string]string "Project removed"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Str("projectID", id.String()).Str("subject", ctxGetSubject(r.Context())).Msg("project deleted")
		h.responder.WriteSuccess(w, "Project removed")
	}
}
