package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"filmix-backend/internal/httputil"
	"filmix-backend/internal/model"
	"filmix-backend/internal/service"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add pins a movie
// POST /favorites
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.AddFavoriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	favorite, err := h.favoriteService.Add(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMovieIDRequired):
			httputil.WriteBadRequest(w, "Movie ID is required!")
		case errors.Is(err, model.ErrAlreadyFavorited):
			httputil.WriteBadRequest(w, "Movie is already in favorites!")
		default:
			writeUnexpected(w, r, "Failed to add favorite", err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.FavoriteResponse{
		Message:  "Movie added to favorites!",
		Favorite: favorite,
	})
}

// Remove unpins a movie
// DELETE /favorites/{movieId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.favoriteService.Remove(r.Context(), user.ID, chi.URLParam(r, "movieId"))
	if err != nil {
		if errors.Is(err, model.ErrFavoriteNotFound) {
			httputil.WriteNotFound(w, "Movie not found in favorites!")
			return
		}
		writeUnexpected(w, r, "Failed to remove favorite", err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Movie removed from favorites!")
}

// List returns the user's favorites, newest first
// GET /favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	favorites, err := h.favoriteService.List(r.Context(), user.ID)
	if err != nil {
		writeUnexpected(w, r, "Failed to list favorites", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.FavoriteListResponse{
		Favorites: favorites,
		Count:     len(favorites),
	})
}

// Check reports whether a movie is pinned
// GET /favorites/check/{movieId}
func (h *FavoriteHandler) Check(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	isFavorite, err := h.favoriteService.IsFavorite(r.Context(), user.ID, chi.URLParam(r, "movieId"))
	if err != nil {
		writeUnexpected(w, r, "Failed to check favorite", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.FavoriteCheckResponse{IsFavorite: isFavorite})
}
