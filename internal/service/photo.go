package service

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"filmix-backend/internal/model"
	"filmix-backend/internal/repository"
	"filmix-backend/internal/storage"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

var photoContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// PhotoService manages the profile photo of a user. The user row only
// holds a flat name; the bytes live in a storage.Blobs backend.
type PhotoService struct {
	users        repository.UserRepository
	blobs        storage.Blobs
	maxDimension int
}

// NewPhotoService returns a service that downscales images wider or taller
// than maxDimension pixels. Zero keeps uploads verbatim.
func NewPhotoService(users repository.UserRepository, blobs storage.Blobs, maxDimension int) *PhotoService {
	return &PhotoService{
		users:        users,
		blobs:        blobs,
		maxDimension: maxDimension,
	}
}

// Upload stores data as the user's new photo and returns the updated user.
// The previous photo is removed only after the user row points at the new one.
func (s *PhotoService) Upload(ctx context.Context, user *model.User, filename string, data []byte) (*model.User, error) {
	if filename == "" {
		return nil, model.ErrNoFileSelected
	}
	if !model.IsAllowedPhotoName(filename) {
		return nil, model.ErrUnsupportedFormat
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + SanitizePhotoName(filename)

	data = s.downscale(name, data)
	contentType := mimetype.Detect(data).String()

	if err := s.blobs.Save(ctx, name, data, contentType); err != nil {
		return nil, err
	}

	if err := s.users.UpdateProfilePhoto(ctx, user.ID, name); err != nil {
		s.discard(ctx, name)
		return nil, err
	}

	if !user.HasDefaultPhoto() && model.IsSafePhotoName(user.ProfilePhoto) {
		s.discard(ctx, user.ProfilePhoto)
	}

	updated := *user
	updated.ProfilePhoto = name
	return &updated, nil
}

// Reset points the user back at the default photo. Resetting a user who
// already has the default photo is a no-op.
func (s *PhotoService) Reset(ctx context.Context, user *model.User) (*model.User, error) {
	updated := *user
	updated.ProfilePhoto = model.DefaultProfilePhoto

	if user.ProfilePhoto == model.DefaultProfilePhoto {
		return &updated, nil
	}

	if err := s.users.UpdateProfilePhoto(ctx, user.ID, model.DefaultProfilePhoto); err != nil {
		return nil, err
	}

	if !user.HasDefaultPhoto() && model.IsSafePhotoName(user.ProfilePhoto) {
		s.discard(ctx, user.ProfilePhoto)
	}

	return &updated, nil
}

// Open returns the stored photo and its content type. Names that could
// escape the storage root are reported as model.ErrPhotoNotFound.
func (s *PhotoService) Open(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if !model.IsSafePhotoName(name) {
		return nil, "", model.ErrPhotoNotFound
	}

	rc, err := s.blobs.Open(ctx, name)
	if err != nil {
		return nil, "", err
	}

	ext := strings.ToLower(filepath.Ext(name))
	contentType, ok := photoContentTypes[ext]
	if !ok {
		contentType = mime.TypeByExtension(ext)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return rc, contentType, nil
}

// discard deletes a blob and only logs failures.
func (s *PhotoService) discard(ctx context.Context, name string) {
	if err := s.blobs.Delete(ctx, name); err != nil {
		zap.L().Warn("Failed to delete photo", zap.String("photo", name), zap.Error(err))
	}
}

// downscale fits images larger than maxDimension inside a square of that
// size, keeping the aspect ratio and format. Anything that cannot be
// decoded is returned unchanged.
func (s *PhotoService) downscale(name string, data []byte) []byte {
	if s.maxDimension <= 0 {
		return data
	}

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := img.Bounds()
	if bounds.Dx() <= s.maxDimension && bounds.Dy() <= s.maxDimension {
		return data
	}

	resized := imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		zap.L().Warn("Failed to encode resized photo", zap.String("photo", name), zap.Error(err))
		return data
	}

	return buf.Bytes()
}

// SanitizePhotoName reduces a client file name to a flat ASCII name made of
// letters, digits, '_', '-' and '.', keeping its extension and fitting
// model.MaxPhotoNameLength.
func SanitizePhotoName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune(' ')
		case r < 128:
			b.WriteRune(r)
		}
	}

	name := strings.Join(strings.Fields(b.String()), "_")
	name = unsafeNameChars.ReplaceAllString(name, "")
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	name = strings.Trim(name, "._")

	if !model.IsAllowedPhotoName(name) {
		name = "photo" + ext
	}

	if len(name) > model.MaxPhotoNameLength {
		nameExt := filepath.Ext(name)
		base := strings.TrimSuffix(name, nameExt)
		name = base[:model.MaxPhotoNameLength-len(nameExt)] + nameExt
	}

	return name
}
