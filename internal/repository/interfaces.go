package repository

import (
	"context"

	"filmix-backend/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByLogin matches either the username or the (lowercased) email.
	GetByLogin(ctx context.Context, identifier string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, username, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfilePhoto(ctx context.Context, id int64, photo string) error
	// Delete removes the user together with their favorites and ratings.
	Delete(ctx context.Context, id int64) error
}

type FavoriteRepository interface {
	// Create inserts the favorite unless the (user, movie) pair exists.
	// Returns false when nothing was inserted.
	Create(ctx context.Context, favorite *model.Favorite) (bool, error)
	Delete(ctx context.Context, userID int64, movieID string) error
	Exists(ctx context.Context, userID int64, movieID string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error)
}

type RatingRepository interface {
	// Upsert inserts the rating or overwrites score and updated_at of the
	// existing (user, movie) row in a single statement. Returns true when
	// a new row was inserted.
	Upsert(ctx context.Context, rating *model.Rating) (bool, error)
	Get(ctx context.Context, userID int64, movieID string) (*model.Rating, error)
	Delete(ctx context.Context, userID int64, movieID string) error
	ListByUser(ctx context.Context, userID int64) ([]model.Rating, error)
}
