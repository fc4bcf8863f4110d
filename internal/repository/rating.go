package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"filmix-backend/internal/model"
)

const ratingColumns = `id, user_id, movie_id, movie_title, rating, created_at, updated_at`

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert writes the rating with INSERT ... ON CONFLICT DO UPDATE so that
// concurrent writers for the same (user, movie) never lose an update.
// The title of an existing row is left untouched. The row was inserted
// when the created_at it comes back with is the one this call sent.
func (r *ratingRepository) Upsert(ctx context.Context, rt *model.Rating) (bool, error) {
	// Postgres keeps microseconds; sending more would break the comparison
	rt.CreatedAt = rt.CreatedAt.Truncate(time.Microsecond)
	rt.UpdatedAt = rt.UpdatedAt.Truncate(time.Microsecond)
	sent := rt.CreatedAt

	query := r.db.Rebind(`
		INSERT INTO ratings (user_id, movie_id, movie_title, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			rating = excluded.rating,
			updated_at = excluded.updated_at
		RETURNING ` + ratingColumns)

	err := r.db.QueryRowxContext(ctx, query,
		rt.UserID,
		rt.MovieID,
		rt.MovieTitle,
		rt.Score,
		rt.CreatedAt,
		rt.UpdatedAt,
	).StructScan(rt)
	if err != nil {
		return false, fmt.Errorf("upsert rating: %w", err)
	}

	return rt.CreatedAt.Equal(sent), nil
}

func (r *ratingRepository) Get(ctx context.Context, userID int64, movieID string) (*model.Rating, error) {
	query := r.db.Rebind(`SELECT ` + ratingColumns + ` FROM ratings WHERE user_id = ? AND movie_id = ?`)

	var rt model.Rating
	err := r.db.GetContext(ctx, &rt, query, userID, movieID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRatingNotFound
		}
		return nil, fmt.Errorf("get rating: %w", err)
	}

	return &rt, nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID int64, movieID string) error {
	query := r.db.Rebind(`DELETE FROM ratings WHERE user_id = ? AND movie_id = ?`)
	result, err := r.db.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}

	return requireAffected(result, model.ErrRatingNotFound)
}

// ListByUser returns the user's ratings, most recently updated first.
func (r *ratingRepository) ListByUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	query := r.db.Rebind(`
		SELECT ` + ratingColumns + `
		FROM ratings
		WHERE user_id = ?
		ORDER BY updated_at DESC, id DESC
	`)

	ratings := []model.Rating{}
	err := r.db.SelectContext(ctx, &ratings, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	return ratings, nil
}
