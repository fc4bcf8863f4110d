package model

import (
	"encoding/json"
	"errors"
	"time"
)

const (
	MinScore = 1.0
	MaxScore = 5.0
)

// Rating is a user's score for a movie. There is at most one per (user, movie);
// re-rating overwrites Score and bumps UpdatedAt.
type Rating struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"-"`
	MovieID    string    `db:"movie_id" json:"movie_id"`
	MovieTitle string    `db:"movie_title" json:"movie_title"`
	Score      float64   `db:"rating" json:"rating"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// RateRequest is the body of POST /ratings. Rating accepts a JSON number
// or a numeric string.
type RateRequest struct {
	MovieID    string       `json:"movie_id"`
	Rating     *json.Number `json:"rating"`
	MovieTitle *string      `json:"movie_title"`
}

type RatingResponse struct {
	Message string  `json:"message,omitempty"`
	Rating  *Rating `json:"rating"`
}

type RatingListResponse struct {
	Ratings []Rating `json:"ratings"`
	Count   int      `json:"count"`
}

// ValidScore reports whether score lies in [MinScore, MaxScore].
func ValidScore(score float64) bool {
	return score >= MinScore && score <= MaxScore
}

var (
	ErrInvalidScore   = errors.New("rating must be between 1.0 and 5.0")
	ErrRatingRequired = errors.New("movie_id and rating are required")
	ErrRatingNotFound = errors.New("rating not found")
)
