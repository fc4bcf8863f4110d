package handler

import (
	"context"
	"net/http"
	"time"

	"filmix-backend/internal/httputil"
)

const apiVersion = "1.0.0"

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RootHandler struct {
	db Pinger
}

func NewRootHandler(db Pinger) *RootHandler {
	return &RootHandler{db: db}
}

// Index describes the API.
// GET /
func (h *RootHandler) Index(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "FilMix Backend API",
		"version": apiVersion,
		"endpoints": map[string]string{
			"register":     "/register",
			"login":        "/login",
			"profile":      "/profile",
			"upload_photo": "/upload_photo",
			"favorites":    "/favorites",
			"ratings":      "/ratings",
		},
	})
}

// Health reports whether the database answers.
// GET /health
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
