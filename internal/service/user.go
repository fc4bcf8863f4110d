package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"filmix-backend/internal/model"
	"filmix-backend/internal/repository"
)

// UserService handles business logic for user operations
type UserService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register creates a new user account with the default profile photo.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	username := strings.TrimSpace(req.Username)
	email := normalizeEmail(req.Email)

	if username == "" || email == "" || req.Password == "" {
		return nil, model.ErrMissingFields
	}
	if len(username) > model.MaxUsernameLength || len(email) > model.MaxEmailLength {
		return nil, model.ErrFieldTooLong
	}

	// Check if username already exists
	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, model.ErrUsernameExists
	}

	exists, err = s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	if len(req.Password) < model.MinPasswordLength {
		return nil, model.ErrWeakPassword
	}

	hashedPassword, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		ProfilePhoto: model.DefaultProfilePhoto,
		CreatedAt:    now(),
	}

	// The repository maps a duplicate that raced past the checks above
	// to the same domain errors.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameExists) || errors.Is(err, model.ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks a username-or-email and password pair.
func (s *UserService) Authenticate(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	identifier := strings.TrimSpace(req.Username)
	if identifier == "" || req.Password == "" {
		return nil, model.ErrMissingCredentials
	}

	user, err := s.repo.GetByLogin(ctx, identifier)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Don't reveal whether the account exists
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile applies the provided fields that differ from the current
// values and returns the updated user. user itself is not modified.
func (s *UserService) UpdateProfile(ctx context.Context, user *model.User, req *model.UpdateProfileRequest) (*model.User, error) {
	updated := *user

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, model.ErrInvalidField
		}
		if len(username) > model.MaxUsernameLength {
			return nil, model.ErrFieldTooLong
		}
		if username != user.Username {
			exists, err := s.repo.ExistsByUsername(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("failed to check username: %w", err)
			}
			if exists {
				return nil, model.ErrUsernameExists
			}
			updated.Username = username
		}
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			return nil, model.ErrInvalidField
		}
		if len(email) > model.MaxEmailLength {
			return nil, model.ErrFieldTooLong
		}
		if email != user.Email {
			exists, err := s.repo.ExistsByEmail(ctx, email)
			if err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if exists {
				return nil, model.ErrEmailExists
			}
			updated.Email = email
		}
	}

	if updated.Username == user.Username && updated.Email == user.Email {
		return &updated, nil
	}

	if err := s.repo.UpdateProfile(ctx, user.ID, updated.Username, updated.Email); err != nil {
		return nil, err
	}

	return &updated, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (s *UserService) ChangePassword(ctx context.Context, user *model.User, req *model.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return model.ErrMissingPassword
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return model.ErrIncorrectPassword
	}

	if len(req.NewPassword) < model.MinPasswordLength {
		return model.ErrWeakPassword
	}

	hashedPassword, err := hashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, user.ID, hashedPassword)
}

// Delete removes the user with all favorites and ratings.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
