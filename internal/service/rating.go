package service

import (
	"context"
	"errors"
	"strings"

	"filmix-backend/internal/model"
	"filmix-backend/internal/repository"
)

type RatingService struct {
	repo repository.RatingRepository
}

func NewRatingService(repo repository.RatingRepository) *RatingService {
	return &RatingService{repo: repo}
}

// Rate creates or overwrites the user's score for a movie. The boolean
// reports whether a new rating was created.
func (s *RatingService) Rate(ctx context.Context, userID int64, req *model.RateRequest) (*model.Rating, bool, error) {
	movieID := strings.TrimSpace(req.MovieID)
	if movieID == "" || req.Rating == nil {
		return nil, false, model.ErrRatingRequired
	}

	score, err := req.Rating.Float64()
	if err != nil || !model.ValidScore(score) {
		return nil, false, model.ErrInvalidScore
	}

	ts := now()
	rating := &model.Rating{
		UserID:     userID,
		MovieID:    movieID,
		MovieTitle: valueOr(req.MovieTitle, model.UnknownMovieTitle),
		Score:      score,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}

	created, err := s.repo.Upsert(ctx, rating)
	if err != nil {
		return nil, false, err
	}

	return rating, created, nil
}

// Get returns the user's rating for a movie, or nil when there is none.
func (s *RatingService) Get(ctx context.Context, userID int64, movieID string) (*model.Rating, error) {
	rating, err := s.repo.Get(ctx, userID, strings.TrimSpace(movieID))
	if errors.Is(err, model.ErrRatingNotFound) {
		return nil, nil
	}
	return rating, err
}

// ListForUser returns the user's ratings, most recently updated first.
func (s *RatingService) ListForUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *RatingService) Delete(ctx context.Context, userID int64, movieID string) error {
	return s.repo.Delete(ctx, userID, strings.TrimSpace(movieID))
}
