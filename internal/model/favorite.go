package model

import (
	"errors"
	"time"
)

// UnknownMovieTitle is stored when the client does not send a title.
const UnknownMovieTitle = "Unknown"

// Favorite is a movie pinned by a user. Title, poster and year are copied
// from the client at write time and never refreshed.
type Favorite struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"-"`
	MovieID     string    `db:"movie_id" json:"movie_id"`
	MovieTitle  string    `db:"movie_title" json:"movie_title"`
	MoviePoster string    `db:"movie_poster" json:"movie_poster"`
	MovieYear   string    `db:"movie_year" json:"movie_year"`
	AddedAt     time.Time `db:"added_at" json:"added_at"`
}

// AddFavoriteRequest is the body of POST /favorites
type AddFavoriteRequest struct {
	MovieID     string  `json:"movie_id"`
	MovieTitle  *string `json:"movie_title"`
	MoviePoster *string `json:"movie_poster"`
	MovieYear   *string `json:"movie_year"`
}

type FavoriteResponse struct {
	Message  string    `json:"message"`
	Favorite *Favorite `json:"favorite"`
}

type FavoriteListResponse struct {
	Favorites []Favorite `json:"favorites"`
	Count     int        `json:"count"`
}

type FavoriteCheckResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

var (
	ErrAlreadyFavorited = errors.New("movie already in favorites")
	ErrFavoriteNotFound = errors.New("movie not found in favorites")
	ErrMovieIDRequired  = errors.New("movie_id is required")
)
