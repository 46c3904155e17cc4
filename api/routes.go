package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rs/zerolog/log"
)

// setupRoutes mounts the public read routes and the token guarded write routes
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware, startupTime time.Time) {
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API is running..."))
	})
	r.Get("/health", healthHandler(startupTime))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			h := handlers.projectHandler

			r.Get("/", h.getAllProjects())
			r.Get("/featured", h.getFeaturedProjects())
			r.Get("/category/{category}", h.getProjectsByCategory())
			r.Get("/tool/{tool}", h.getProjectsByTool())
			r.Get("/search", h.searchProjects())
			r.Get("/{projectID}", h.getProject())

			r.Group(func(r chi.Router) {
				r.Use(auth.authenticate)
				r.Post("/", h.createProject())
				r.Put("/{projectID}", h.updateProject())
				r.Delete("/{projectID}", h.deleteProject())
			})
		})

		mountCatalog(r, "/skills", handlers.skillHandler, auth)
		mountCatalog(r, "/tools", handlers.toolHandler, auth)
		mountCatalog(r, "/experiences", handlers.experienceHandler, auth)
		mountCatalog(r, "/certificates", handlers.certificateHandler, auth)
	})
}

func mountCatalog[T any, PT interface {
	*T
	models.CatalogEntry
}](r chi.Router, pattern string, h catalogHandler[T, PT], auth authMiddleware) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", h.getAll())
		r.Get("/{id}", h.getOne())

		r.Group(func(r chi.Router) {
			r.Use(auth.authenticate)
			r.Post("/", h.create())
			r.Post("/batch", h.createBatch())
			r.Put("/{id}", h.update())
			r.Delete("/{id}", h.delete())
		})
	})
}

func healthHandler(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthHandler").Logger())
	return func(w http.ResponseWriter, _ *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"status":    "ok",
			"startedAt": startupTime.UTC().Format(time.RFC3339),
			"uptime":    time.Since(startupTime).Round(time.Second).String(),
		})
	}
}
