package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"filmix-backend/internal/database"
	"filmix-backend/internal/model"
)

const userColumns = `id, username, email, password_hash, profile_photo, created_at`

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := r.db.Rebind(`
		INSERT INTO users (username, email, password_hash, profile_photo, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at
	`)

	row := r.db.QueryRowxContext(ctx, query,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.ProfilePhoto,
		u.CreatedAt,
	)

	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if mapped := uniqueUserError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByLogin retrieves a user whose username or email equals identifier
func (r *userRepository) GetByLogin(ctx context.Context, identifier string) (*model.User, error) {
	query := r.db.Rebind(`
		SELECT ` + userColumns + `
		FROM users
		WHERE username = ? OR email = ?
		ORDER BY id
		LIMIT 1
	`)

	var u model.User
	err := r.db.GetContext(ctx, &u, query, identifier, strings.ToLower(identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by login: %w", err)
	}

	return &u, nil
}

// ExistsByUsername checks if a username is already taken
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`)

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, username)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}

	return exists, nil
}

// ExistsByEmail checks if an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := r.db.Rebind(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`)

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}

	return exists, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id int64, username, email string) error {
	query := r.db.Rebind(`UPDATE users SET username = ?, email = ? WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, username, email, id)
	if err != nil {
		if mapped := uniqueUserError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireAffected(result, model.ErrUserNotFound)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	query := r.db.Rebind(`UPDATE users SET password_hash = ? WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return requireAffected(result, model.ErrUserNotFound)
}

func (r *userRepository) UpdateProfilePhoto(ctx context.Context, id int64, photo string) error {
	query := r.db.Rebind(`UPDATE users SET profile_photo = ? WHERE id = ?`)
	result, err := r.db.ExecContext(ctx, query, photo, id)
	if err != nil {
		return fmt.Errorf("failed to update profile photo: %w", err)
	}
	return requireAffected(result, model.ErrUserNotFound)
}

// Delete removes a user and everything they own in one transaction.
// Child rows are deleted explicitly so the rule holds even when the
// connection does not enforce foreign keys.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"favorites", "ratings"} {
		query := tx.Rebind(`DELETE FROM ` + table + ` WHERE user_id = ?`)
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if err := requireAffected(result, model.ErrUserNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// uniqueUserError translates a unique violation on users into a domain error.
func uniqueUserError(err error) error {
	switch {
	case database.ViolatesColumn(err, "username"):
		return model.ErrUsernameExists
	case database.ViolatesColumn(err, "email"):
		return model.ErrEmailExists
	}
	return nil
}

func requireAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
