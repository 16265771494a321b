package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/model"
)

// FavoriteService is what FavoriteHandler needs from the service layer.
type FavoriteService interface {
	List(ctx context.Context, userID int64) ([]model.Favorite, error)
	Add(ctx context.Context, userID int64, target model.FavoriteTarget) (*model.Favorite, error)
	Remove(ctx context.Context, userID int64, target model.FavoriteTarget) error
}

// FavoriteHandler serves the current user's bookmarks.
//
// The user is whoever auth.CurrentUser put in the request context; handlers
// pass that id to the service explicitly.
type FavoriteHandler struct {
	svc    FavoriteService
	logger *slog.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(svc FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{svc: svc, logger: logger}
}

// HandleList handles GET /users/favorites.
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	favorites, err := h.svc.List(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, serializeAll(favorites, serializeFavorite))
}

// HandleAddPlanet handles POST /favorite/planet/{id}.
func (h *FavoriteHandler) HandleAddPlanet(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, model.TargetPlanet)
}

// HandleAddPerson handles POST /favorite/people/{id}.
func (h *FavoriteHandler) HandleAddPerson(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, model.TargetPerson)
}

// HandleRemovePlanet handles DELETE /favorite/planet/{id}.
func (h *FavoriteHandler) HandleRemovePlanet(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, model.TargetPlanet)
}

// HandleRemovePerson handles DELETE /favorite/people/{id}.
func (h *FavoriteHandler) HandleRemovePerson(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, model.TargetPerson)
}

func (h *FavoriteHandler) add(w http.ResponseWriter, r *http.Request, kind model.TargetKind) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: notFoundMessage(kind)})
		return
	}

	if _, err := h.svc.Add(r.Context(), userID, model.FavoriteTarget{Kind: kind, ID: id}); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{
		Msg: fmt.Sprintf("%s %d added to favorites", label(kind), id),
	})
}

func (h *FavoriteHandler) remove(w http.ResponseWriter, r *http.Request, kind model.TargetKind) {
	userID, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Favorite " + lowerLabel(kind) + " not found"})
		return
	}

	if err := h.svc.Remove(r.Context(), userID, model.FavoriteTarget{Kind: kind, ID: id}); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Msg: fmt.Sprintf("%s %d removed from favorites", label(kind), id),
	})
}

// currentUser writes a 401 and returns false when no middleware identified
// the caller. With auth.CurrentUser mounted that never happens.
func (h *FavoriteHandler) currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Error("request reached a favorites route without a current user",
			slog.String("path", r.URL.Path))
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "No current user"})
		return 0, false
	}
	return userID, true
}

// People are called "characters" in API messages.
func label(kind model.TargetKind) string {
	if kind == model.TargetPerson {
		return "Character"
	}
	return "Planet"
}

func lowerLabel(kind model.TargetKind) string {
	if kind == model.TargetPerson {
		return "character"
	}
	return "planet"
}

func notFoundMessage(kind model.TargetKind) string {
	return label(kind) + " not found"
}
