package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"filmix-backend/internal/model"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

// =============================================================================
// REGISTER TESTS
// =============================================================================

func TestUserService_Register_Success(t *testing.T) {
	// ARRANGE: Set up test data and mocks
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			// Simulate the database assigning an ID
			user.ID = 1
			return nil
		},
	}
	svc := NewUserService(mockRepo)

	req := &model.RegisterRequest{
		Username: "  alice ",
		Email:    " Alice@X.com ",
		Password: "secret1",
	}

	// ACT
	user, err := svc.Register(context.Background(), req)

	// ASSERT
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("username = %q, want %q", user.Username, "alice")
	}

	if user.Email != "alice@x.com" {
		t.Errorf("email = %q, want lowercased %q", user.Email, "alice@x.com")
	}

	if user.ProfilePhoto != model.DefaultProfilePhoto {
		t.Errorf("profile_photo = %q, want %q", user.ProfilePhoto, model.DefaultProfilePhoto)
	}

	if user.CreatedAt.IsZero() || user.CreatedAt.Location() != time.UTC {
		t.Errorf("created_at = %v, want a UTC timestamp", user.CreatedAt)
	}

	// Verify password was hashed (not stored in plain text!)
	if user.PasswordHash == req.Password {
		t.Error("password should be hashed, not stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		t.Error("password hash should be valid bcrypt hash")
	}

	if len(mockRepo.createCalls) != 1 {
		t.Errorf("Create called %d times, want 1", len(mockRepo.createCalls))
	}
}

func TestUserService_Register_Validation(t *testing.T) {
	long := make([]byte, model.MaxUsernameLength+1)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		req     model.RegisterRequest
		wantErr error
	}{
		{"missing username", model.RegisterRequest{Username: " ", Email: "a@x.com", Password: "secret1"}, model.ErrMissingFields},
		{"missing email", model.RegisterRequest{Username: "a", Password: "secret1"}, model.ErrMissingFields},
		{"missing password", model.RegisterRequest{Username: "a", Email: "a@x.com"}, model.ErrMissingFields},
		{"short password", model.RegisterRequest{Username: "a", Email: "a@x.com", Password: "12345"}, model.ErrWeakPassword},
		{"username too long", model.RegisterRequest{Username: string(long), Email: "a@x.com", Password: "secret1"}, model.ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{}
			svc := NewUserService(mockRepo)

			_, err := svc.Register(context.Background(), &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if len(mockRepo.createCalls) != 0 {
				t.Error("Create should not be called for invalid input")
			}
		})
	}
}

func TestUserService_Register_UsernameExists(t *testing.T) {
	mockRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})

	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("error = %v, want ErrUsernameExists", err)
	}
}

func TestUserService_Register_EmailExistsAnyCase(t *testing.T) {
	var checked string
	mockRepo := &mockUserRepository{
		existsByEmailFn: func(ctx context.Context, email string) (bool, error) {
			checked = email
			return email == "alice@x.com", nil
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Username: "bob", Email: "ALICE@X.COM", Password: "secret1"})

	if !errors.Is(err, model.ErrEmailExists) {
		t.Errorf("error = %v, want ErrEmailExists", err)
	}
	if checked != "alice@x.com" {
		t.Errorf("email checked = %q, want lowercased", checked)
	}
}

func TestUserService_Register_ConstraintRace(t *testing.T) {
	// The pre-check passes but another request wins the insert
	mockRepo := &mockUserRepository{
		createFn: func(ctx context.Context, user *model.User) error {
			return model.ErrUsernameExists
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})

	if !errors.Is(err, model.ErrUsernameExists) {
		t.Errorf("error = %v, want ErrUsernameExists", err)
	}
}

func TestUserService_Register_DatabaseError(t *testing.T) {
	dbErr := errors.New("database connection failed")
	mockRepo := &mockUserRepository{
		existsByUsernameFn: func(ctx context.Context, username string) (bool, error) {
			return false, dbErr
		},
	}
	svc := NewUserService(mockRepo)

	_, err := svc.Register(context.Background(), &model.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "secret1"})

	if !errors.Is(err, dbErr) {
		t.Errorf("error = %v, should wrap %v", err, dbErr)
	}
}

// =============================================================================
// AUTHENTICATE TESTS
// =============================================================================

func TestUserService_Authenticate(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", Email: "alice@x.com", PasswordHash: mustHash(t, "secret1")}
	mockRepo := &mockUserRepository{
		getByLoginFn: func(ctx context.Context, identifier string) (*model.User, error) {
			if identifier == "alice" || identifier == "alice@x.com" || identifier == "Alice@X.com" {
				return alice, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewUserService(mockRepo)

	tests := []struct {
		name     string
		login    string
		password string
		wantErr  error
	}{
		{"by username", "alice", "secret1", nil},
		{"by email", "alice@x.com", "secret1", nil},
		{"by email any case", "Alice@X.com", "secret1", nil},
		{"wrong password", "alice", "wrong-pass", model.ErrInvalidCredentials},
		{"unknown user", "bob", "secret1", model.ErrInvalidCredentials},
		{"missing password", "alice", "", model.ErrMissingCredentials},
		{"missing login", "", "secret1", model.ErrMissingCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.Authenticate(context.Background(), &model.LoginRequest{Username: tt.login, Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && user.ID != alice.ID {
				t.Errorf("user id = %d, want %d", user.ID, alice.ID)
			}
		})
	}
}

func TestUserService_Authenticate_FailuresAreIndistinguishable(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", PasswordHash: mustHash(t, "secret1")}
	mockRepo := &mockUserRepository{
		getByLoginFn: func(ctx context.Context, identifier string) (*model.User, error) {
			if identifier == "alice" {
				return alice, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
	svc := NewUserService(mockRepo)

	_, errWrongPassword := svc.Authenticate(context.Background(), &model.LoginRequest{Username: "alice", Password: "nope-nope"})
	_, errUnknownUser := svc.Authenticate(context.Background(), &model.LoginRequest{Username: "ghost", Password: "nope-nope"})

	if errWrongPassword != errUnknownUser {
		t.Errorf("errors differ: %v vs %v", errWrongPassword, errUnknownUser)
	}
}

// =============================================================================
// PROFILE TESTS
// =============================================================================

func TestUserService_UpdateProfile(t *testing.T) {
	alice := &model.User{ID: 1, Username: "alice", Email: "alice@x.com"}
	str := func(s string) *string { return &s }

	tests := []struct {
		name         string
		req          model.UpdateProfileRequest
		taken        bool
		wantErr      error
		wantUsername string
		wantEmail    string
		wantUpdate   bool
	}{
		{name: "nothing provided", wantUsername: "alice", wantEmail: "alice@x.com"},
		{name: "same values", req: model.UpdateProfileRequest{Username: str("alice"), Email: str("ALICE@x.com")}, wantUsername: "alice", wantEmail: "alice@x.com"},
		{name: "new username only", req: model.UpdateProfileRequest{Username: str("alicia")}, wantUsername: "alicia", wantEmail: "alice@x.com", wantUpdate: true},
		{name: "new email lowercased", req: model.UpdateProfileRequest{Email: str(" New@X.com")}, wantUsername: "alice", wantEmail: "new@x.com", wantUpdate: true},
		{name: "taken username", req: model.UpdateProfileRequest{Username: str("bob")}, taken: true, wantErr: model.ErrUsernameExists},
		{name: "taken email", req: model.UpdateProfileRequest{Email: str("bob@x.com")}, taken: true, wantErr: model.ErrEmailExists},
		{name: "blank username", req: model.UpdateProfileRequest{Username: str("  ")}, wantErr: model.ErrInvalidField},
		{name: "blank email", req: model.UpdateProfileRequest{Email: str("")}, wantErr: model.ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockUserRepository{
				existsByUsernameFn: func(ctx context.Context, username string) (bool, error) { return tt.taken, nil },
				existsByEmailFn:    func(ctx context.Context, email string) (bool, error) { return tt.taken, nil },
			}
			svc := NewUserService(mockRepo)

			updated, err := svc.UpdateProfile(context.Background(), alice, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}

			if updated.Username != tt.wantUsername || updated.Email != tt.wantEmail {
				t.Errorf("got (%q, %q), want (%q, %q)", updated.Username, updated.Email, tt.wantUsername, tt.wantEmail)
			}
			if got := mockRepo.updateProfileCalls == 1; got != tt.wantUpdate {
				t.Errorf("UpdateProfile called = %v, want %v", got, tt.wantUpdate)
			}
			if alice.Username != "alice" || alice.Email != "alice@x.com" {
				t.Error("input user must not be modified")
			}
		})
	}
}

// =============================================================================
// PASSWORD TESTS
// =============================================================================

func TestUserService_ChangePassword(t *testing.T) {
	tests := []struct {
		name    string
		req     model.ChangePasswordRequest
		wantErr error
	}{
		{"success", model.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "newpass"}, nil},
		{"wrong current", model.ChangePasswordRequest{CurrentPassword: "secret2", NewPassword: "newpass"}, model.ErrIncorrectPassword},
		{"weak new", model.ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "123"}, model.ErrWeakPassword},
		{"missing fields", model.ChangePasswordRequest{CurrentPassword: "secret1"}, model.ErrMissingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alice := &model.User{ID: 1, Username: "alice", PasswordHash: mustHash(t, "secret1")}
			var storedHash string
			mockRepo := &mockUserRepository{
				updatePasswordFn: func(ctx context.Context, id int64, hash string) error {
					storedHash = hash
					return nil
				},
			}
			svc := NewUserService(mockRepo)

			err := svc.ChangePassword(context.Background(), alice, &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				if storedHash != "" {
					t.Error("password must not change on failure")
				}
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(tt.req.NewPassword)); err != nil {
				t.Error("stored hash should match the new password")
			}
		})
	}
}
