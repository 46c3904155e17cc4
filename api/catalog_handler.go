package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/video-portfolio-backend/models"
	"github.com/rpupo63/video-portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// catalogHandler serves one catalog collection: skills, tools, experiences
// or certificates.
type catalogHandler[T any, PT interface {
	*T
	models.CatalogEntry
}] struct {
	responder Responder
	logger    zerolog.Logger
	service   *services.CatalogService[T, PT]
}

func newCatalogHandler[T any, PT interface {
	*T
	models.CatalogEntry
}](service *services.CatalogService[T, PT]) catalogHandler[T, PT] {
	logger := log.With().Str("handlerName", service.Entity()+"Handler").Logger()

	return catalogHandler[T, PT]{
		responder: NewResponder(logger),
		logger:    logger,
		service:   service,
	}
}

func (h catalogHandler[T, PT]) getAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.service.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, items)
	}
}

func (h catalogHandler[T, PT]) getOne() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id", h.service.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		item, err := h.service.Get(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, item)
	}
}

func (h catalogHandler[T, PT]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		item := new(T)
		if err := decodeJSON(w, r, item); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.service.Create(r.Context(), item)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

func (h catalogHandler[T, PT]) createBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var batch BatchRequest[T]
		if err := decodeJSON(w, r, &batch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.service.CreateMany(r.Context(), batch.Items)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Int("count", len(created)).Msg("batch created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

func (h catalogHandler[T, PT]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id", h.service.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		body, err := readBody(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.service.Update(r.Context(), id, body)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, updated)
	}
}

func (h catalogHandler[T, PT]) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r, "id", h.service.Entity())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.service.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w, capitalize(h.service.Entity())+" removed")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
