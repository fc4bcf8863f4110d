package service

import (
	"context"
	"strings"

	"filmix-backend/internal/model"
	"filmix-backend/internal/repository"
)

type FavoriteService struct {
	repo repository.FavoriteRepository
}

func NewFavoriteService(repo repository.FavoriteRepository) *FavoriteService {
	return &FavoriteService{repo: repo}
}

// Add pins a movie for the user. Movie metadata is stored as sent.
func (s *FavoriteService) Add(ctx context.Context, userID int64, req *model.AddFavoriteRequest) (*model.Favorite, error) {
	movieID := strings.TrimSpace(req.MovieID)
	if movieID == "" {
		return nil, model.ErrMovieIDRequired
	}

	favorite := &model.Favorite{
		UserID:      userID,
		MovieID:     movieID,
		MovieTitle:  valueOr(req.MovieTitle, model.UnknownMovieTitle),
		MoviePoster: valueOr(req.MoviePoster, ""),
		MovieYear:   valueOr(req.MovieYear, ""),
		AddedAt:     now(),
	}

	inserted, err := s.repo.Create(ctx, favorite)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, model.ErrAlreadyFavorited
	}

	return favorite, nil
}

// Movie ids are trimmed on every path so lookups match what Add stored.
func (s *FavoriteService) Remove(ctx context.Context, userID int64, movieID string) error {
	return s.repo.Delete(ctx, userID, strings.TrimSpace(movieID))
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID int64) ([]model.Favorite, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *FavoriteService) IsFavorite(ctx context.Context, userID int64, movieID string) (bool, error) {
	return s.repo.Exists(ctx, userID, strings.TrimSpace(movieID))
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
