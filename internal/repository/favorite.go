package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"filmix-backend/internal/model"
)

type favoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(ctx context.Context, f *model.Favorite) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO favorites (user_id, movie_id, movie_title, movie_poster, movie_year, added_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id) DO NOTHING
		RETURNING id, added_at
	`)

	err := r.db.QueryRowxContext(ctx, query,
		f.UserID,
		f.MovieID,
		f.MovieTitle,
		f.MoviePoster,
		f.MovieYear,
		f.AddedAt,
	).Scan(&f.ID, &f.AddedAt)
	if err != nil {
		// DO NOTHING returns no row when the pair already exists
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}

	return true, nil
}

func (r *favoriteRepository) Delete(ctx context.Context, userID int64, movieID string) error {
	query := r.db.Rebind(`DELETE FROM favorites WHERE user_id = ? AND movie_id = ?`)
	result, err := r.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	return requireAffected(result, model.ErrFavoriteNotFound)
}

func (r *favoriteRepository) Exists(ctx context.Context, userID int64, movieID string) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = ? AND movie_id = ?)`)
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, movieID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite existence: %w", err)
	}
	return exists, nil
}

// ListByUser returns the user's favorites, most recently added first.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	query := r.db.Rebind(`
		SELECT id, user_id, movie_id, movie_title, movie_poster, movie_year, added_at
		FROM favorites
		WHERE user_id = ?
		ORDER BY added_at DESC, id DESC
	`)

	favorites := []model.Favorite{}
	err := r.db.SelectContext(ctx, &favorites, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, nil
}
