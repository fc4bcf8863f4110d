package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"filmix-backend/internal/handler"
	"filmix-backend/internal/httputil"
	authmw "filmix-backend/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	RootHandler     *handler.RootHandler
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	PhotoHandler    *handler.PhotoHandler
	FavoriteHandler *handler.FavoriteHandler
	RatingHandler   *handler.RatingHandler
	Verifier        authmw.TokenVerifier
	CORSOrigins     []string
	MaxBodyBytes    int64
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(authmw.RequestLogger)
	r.Use(authmw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(authmw.BodyLimit(cfg.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteNotFound(w, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
	})

	// Public routes - no authentication required
	r.Get("/", cfg.RootHandler.Index)
	r.Get("/health", cfg.RootHandler.Health)
	r.Post("/register", cfg.AuthHandler.Register)
	r.Post("/login", cfg.AuthHandler.Login)
	r.Get("/profile_photos/{filename}", cfg.PhotoHandler.Serve)

	// Protected routes - require authentication
	r.Group(func(r chi.Router) {
		r.Use(authmw.AuthMiddleware(cfg.Verifier))

		r.Get("/profile", cfg.UserHandler.GetProfile)
		r.Put("/profile", cfg.UserHandler.UpdateProfile)
		r.Post("/change_password", cfg.UserHandler.ChangePassword)

		r.Post("/upload_photo", cfg.PhotoHandler.Upload)
		r.Post("/reset_photo", cfg.PhotoHandler.Reset)

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", cfg.FavoriteHandler.List)
			r.Post("/", cfg.FavoriteHandler.Add)
			r.Get("/check/{movieId}", cfg.FavoriteHandler.Check)
			r.Delete("/{movieId}", cfg.FavoriteHandler.Remove)
		})

		r.Route("/ratings", func(r chi.Router) {
			r.Get("/", cfg.RatingHandler.List)
			r.Post("/", cfg.RatingHandler.Rate)
			r.Get("/{movieId}", cfg.RatingHandler.Get)
			r.Delete("/{movieId}", cfg.RatingHandler.Delete)
		})
	})

	return r
}
