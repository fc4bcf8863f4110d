package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"filmix-backend/internal/httputil"
	"filmix-backend/internal/model"
	"filmix-backend/internal/service"
)

type RatingHandler struct {
	ratingService *service.RatingService
}

func NewRatingHandler(ratingService *service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// Rate creates or updates the user's rating. Both outcomes answer 201.
// POST /ratings
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.RateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, created, err := h.ratingService.Rate(r.Context(), user.ID, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrRatingRequired):
			httputil.WriteBadRequest(w, "Movie ID and rating are required!")
		case errors.Is(err, model.ErrInvalidScore):
			httputil.WriteBadRequest(w, "Rating must be between 1.0 and 5.0!")
		default:
			writeUnexpected(w, r, "Failed to rate movie", err)
		}
		return
	}

	message := "Movie rating updated!"
	if created {
		message = "Movie rated!"
	}

	httputil.WriteJSON(w, http.StatusCreated, model.RatingResponse{
		Message: message,
		Rating:  rating,
	})
}

// Get returns the user's rating for a movie, null when unrated
// GET /ratings/{movieId}
func (h *RatingHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	rating, err := h.ratingService.Get(r.Context(), user.ID, chi.URLParam(r, "movieId"))
	if err != nil {
		writeUnexpected(w, r, "Failed to get rating", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.RatingResponse{Rating: rating})
}

// List returns the user's ratings, most recently updated first
// GET /ratings
func (h *RatingHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	ratings, err := h.ratingService.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeUnexpected(w, r, "Failed to list ratings", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.RatingListResponse{
		Ratings: ratings,
		Count:   len(ratings),
	})
}

// Delete removes the user's rating for a movie
// DELETE /ratings/{movieId}
func (h *RatingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	err := h.ratingService.Delete(r.Context(), user.ID, chi.URLParam(r, "movieId"))
	if err != nil {
		if errors.Is(err, model.ErrRatingNotFound) {
			httputil.WriteNotFound(w, "Movie rating not found!")
			return
		}
		writeUnexpected(w, r, "Failed to delete rating", err)
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Movie rating deleted!")
}
