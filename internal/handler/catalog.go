package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/starwars-api/internal/model"
)

// CatalogService is what CatalogHandler needs from the service layer.
// *service.CatalogService satisfies it; tests pass a mock.
type CatalogService interface {
	ListPeople(ctx context.Context) ([]model.Person, error)
	GetPerson(ctx context.Context, id int64) (*model.Person, error)
	ListPlanets(ctx context.Context) ([]model.Planet, error)
	GetPlanet(ctx context.Context, id int64) (*model.Planet, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

// CatalogHandler serves the read-only endpoints: people, planets, users.
type CatalogHandler struct {
	svc    CatalogService
	logger *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, logger: logger}
}

// HandleListPeople handles GET /people.
func (h *CatalogHandler) HandleListPeople(w http.ResponseWriter, r *http.Request) {
	people, err := h.svc.ListPeople(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, serializeAll(people, serializePerson))
}

// HandleGetPerson handles GET /people/{id}.
func (h *CatalogHandler) HandleGetPerson(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Character not found"})
		return
	}

	person, err := h.svc.GetPerson(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, serializePerson(*person))
}

// HandleListPlanets handles GET /planets.
func (h *CatalogHandler) HandleListPlanets(w http.ResponseWriter, r *http.Request) {
	planets, err := h.svc.ListPlanets(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, serializeAll(planets, serializePlanet))
}

// HandleGetPlanet handles GET /planets/{id}.
func (h *CatalogHandler) HandleGetPlanet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Planet not found"})
		return
	}

	planet, err := h.svc.GetPlanet(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, serializePlanet(*planet))
}

// HandleListUsers handles GET /users.
func (h *CatalogHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, serializeAll(users, serializeUser))
}

// pathID reads the {id} URL parameter. Routes restrict it to digits, so the
// only failure left is a number too large for int64, or zero.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
