package model

import (
	"errors"
	"time"
)

const (
	// DefaultProfilePhoto is the photo reference of users who never uploaded one.
	DefaultProfilePhoto = "default.png"

	MinPasswordLength = 6
	MaxUsernameLength = 80
	MaxEmailLength    = 120
)

// User represents a registered account
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"` // "-" hides from JSON output
	ProfilePhoto string    `db:"profile_photo" json:"profile_photo"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// HasDefaultPhoto reports whether the user still uses the placeholder photo.
func (u *User) HasDefaultPhoto() bool {
	return u.ProfilePhoto == "" || u.ProfilePhoto == DefaultProfilePhoto
}

// RegisterRequest represents the data needed to register a new user
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the data needed to log in.
// Username may hold either the username or the email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// UpdateProfileRequest carries optional profile changes; nil fields are left untouched.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// ChangePasswordRequest is the body of POST /change_password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UserResponse wraps a user with an optional message.
type UserResponse struct {
	Message string `json:"message,omitempty"`
	User    *User  `json:"user"`
}

var (
	// ErrUserNotFound is returned when a user cannot be found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when attempting to use a taken username
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when attempting to use a registered email
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidCredentials is returned when login credentials are incorrect
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakPassword is returned when a password is shorter than MinPasswordLength
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrIncorrectPassword is returned by ChangePassword when the current password does not match
	ErrIncorrectPassword = errors.New("current password is incorrect")

	ErrMissingFields      = errors.New("username, email and password are required")
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidField       = errors.New("invalid field value")
	ErrFieldTooLong       = errors.New("field value too long")
	ErrMissingPassword    = errors.New("current and new password are required")
)
