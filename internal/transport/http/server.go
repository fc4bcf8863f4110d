package http

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"filmix-backend/internal/config"
	"filmix-backend/internal/database"
	"filmix-backend/internal/handler"
	"filmix-backend/internal/logger"
	"filmix-backend/internal/repository"
	"filmix-backend/internal/service"
	"filmix-backend/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// NewHandler wires repositories, services and handlers over db and blobs.
func NewHandler(cfg *config.Config, db *sqlx.DB, blobs storage.Blobs) stdhttp.Handler {
	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(userRepo, cfg)
	favoriteService := service.NewFavoriteService(favoriteRepo)
	ratingService := service.NewRatingService(ratingRepo)
	photoService := service.NewPhotoService(userRepo, blobs, cfg.PhotoMaxDimension)

	return NewRouter(RouterConfig{
		RootHandler:     handler.NewRootHandler(db),
		AuthHandler:     handler.NewAuthHandler(userService, authService),
		UserHandler:     handler.NewUserHandler(userService),
		PhotoHandler:    handler.NewPhotoHandler(photoService),
		FavoriteHandler: handler.NewFavoriteHandler(favoriteService),
		RatingHandler:   handler.NewRatingHandler(ratingService),
		Verifier:        authService,
		CORSOrigins:     cfg.CORSOrigins,
		MaxBodyBytes:    cfg.MaxUploadBytes,
	})
}

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Logging
	flush, err := logger.Setup(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Connect to Database
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// 4. Photo storage
	blobs, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to set up photo storage: %w", err)
	}

	// 5. Setup Server
	srv := &stdhttp.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           NewHandler(cfg, db, blobs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("Starting server", zap.String("addr", srv.Addr), zap.String("storage", cfg.PhotoStorage))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, stdhttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zap.L().Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
