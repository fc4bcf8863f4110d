package service

import (
	"bytes"
	"context"
	"io"
	"sync"

	"filmix-backend/internal/model"
)

// =============================================================================
// MOCK REPOSITORIES
// =============================================================================
//
// Services depend on repository interfaces, so tests swap in hand-written
// mocks whose behavior each test sets through function fields.

type mockUserRepository struct {
	createFn             func(ctx context.Context, user *model.User) error
	getByIDFn            func(ctx context.Context, id int64) (*model.User, error)
	getByLoginFn         func(ctx context.Context, identifier string) (*model.User, error)
	existsByUsernameFn   func(ctx context.Context, username string) (bool, error)
	existsByEmailFn      func(ctx context.Context, email string) (bool, error)
	updateProfileFn      func(ctx context.Context, id int64, username, email string) error
	updatePasswordFn     func(ctx context.Context, id int64, passwordHash string) error
	updateProfilePhotoFn func(ctx context.Context, id int64, photo string) error
	deleteFn             func(ctx context.Context, id int64) error

	// Track calls for assertions
	createCalls        []*model.User
	updateProfileCalls int
	photoUpdates       []string
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByLogin(ctx context.Context, identifier string) (*model.User, error) {
	if m.getByLoginFn != nil {
		return m.getByLoginFn(ctx, identifier)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id int64, username, email string) error {
	m.updateProfileCalls++
	if m.updateProfileFn != nil {
		return m.updateProfileFn(ctx, id, username, email)
	}
	return nil
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.updatePasswordFn != nil {
		return m.updatePasswordFn(ctx, id, passwordHash)
	}
	return nil
}

func (m *mockUserRepository) UpdateProfilePhoto(ctx context.Context, id int64, photo string) error {
	m.photoUpdates = append(m.photoUpdates, photo)
	if m.updateProfilePhotoFn != nil {
		return m.updateProfilePhotoFn(ctx, id, photo)
	}
	return nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockFavoriteRepository struct {
	createFn     func(ctx context.Context, favorite *model.Favorite) (bool, error)
	deleteFn     func(ctx context.Context, userID int64, movieID string) error
	existsFn     func(ctx context.Context, userID int64, movieID string) (bool, error)
	listByUserFn func(ctx context.Context, userID int64) ([]model.Favorite, error)
}

func (m *mockFavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) (bool, error) {
	if m.createFn != nil {
		return m.createFn(ctx, favorite)
	}
	return true, nil
}

func (m *mockFavoriteRepository) Delete(ctx context.Context, userID int64, movieID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, movieID)
	}
	return nil
}

func (m *mockFavoriteRepository) Exists(ctx context.Context, userID int64, movieID string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, userID, movieID)
	}
	return false, nil
}

func (m *mockFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]model.Favorite, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []model.Favorite{}, nil
}

type mockRatingRepository struct {
	upsertFn     func(ctx context.Context, rating *model.Rating) (bool, error)
	getFn        func(ctx context.Context, userID int64, movieID string) (*model.Rating, error)
	deleteFn     func(ctx context.Context, userID int64, movieID string) error
	listByUserFn func(ctx context.Context, userID int64) ([]model.Rating, error)

	upsertCalls int
}

func (m *mockRatingRepository) Upsert(ctx context.Context, rating *model.Rating) (bool, error) {
	m.upsertCalls++
	if m.upsertFn != nil {
		return m.upsertFn(ctx, rating)
	}
	return true, nil
}

func (m *mockRatingRepository) Get(ctx context.Context, userID int64, movieID string) (*model.Rating, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, movieID)
	}
	return nil, model.ErrRatingNotFound
}

func (m *mockRatingRepository) Delete(ctx context.Context, userID int64, movieID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, movieID)
	}
	return nil
}

func (m *mockRatingRepository) ListByUser(ctx context.Context, userID int64) ([]model.Rating, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return []model.Rating{}, nil
}

// =============================================================================
// IN-MEMORY BLOBS
// =============================================================================

type memoryBlobs struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	saveErr      error
	deleteErr    error
	deleted      []string
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{
		objects:      map[string][]byte{},
		contentTypes: map[string]string{},
	}
}

func (b *memoryBlobs) Save(_ context.Context, name string, data []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saveErr != nil {
		return b.saveErr
	}
	b.objects[name] = append([]byte(nil), data...)
	b.contentTypes[name] = contentType
	return nil
}

func (b *memoryBlobs) Open(_ context.Context, name string) (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.objects[name]
	if !ok {
		return nil, model.ErrPhotoNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *memoryBlobs) Delete(_ context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, name)
	if b.deleteErr != nil {
		return b.deleteErr
	}
	delete(b.objects, name)
	return nil
}

func (b *memoryBlobs) has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[name]
	return ok
}
