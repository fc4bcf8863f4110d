package model

import (
	"errors"
	"path/filepath"
	"strings"
)

const (
	MaxPhotoNameLength = 100
	PhotoCacheControl  = "public, max-age=31536000" // 1 year, names are never reused
)

// Accepted profile photo extensions, compared case-insensitively.
var allowedPhotoExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// Domain errors for photo operations
var (
	ErrNoFileSelected    = errors.New("no file selected")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrPhotoNotFound     = errors.New("photo not found")
)

// PhotoResponse is returned by the upload and reset endpoints.
type PhotoResponse struct {
	Message      string `json:"message"`
	ProfilePhoto string `json:"profile_photo"`
	User         *User  `json:"user"`
}

// IsAllowedPhotoName reports whether filename carries a supported image extension.
func IsAllowedPhotoName(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedPhotoExtensions[ext]
	return ok
}

// IsSafePhotoName reports whether name can be resolved inside the upload root.
func IsSafePhotoName(name string) bool {
	if name == "" || name == "." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
