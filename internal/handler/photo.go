package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"filmix-backend/internal/httputil"
	"filmix-backend/internal/model"
	"filmix-backend/internal/service"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in
// memory before spilling to a temp file.
const multipartMemory = 8 << 20

type PhotoHandler struct {
	photoService *service.PhotoService
}

func NewPhotoHandler(photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// Upload replaces the current user's profile photo with the "file" field
// POST /upload_photo
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) || strings.Contains(err.Error(), "request body too large") {
			httputil.WriteTooLarge(w, bodyTooLargeMessage)
			return
		}
		httputil.WriteBadRequest(w, "No file selected!")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteBadRequest(w, "No file selected!")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeUnexpected(w, r, "Failed to read upload", err)
		return
	}

	updated, err := h.photoService.Upload(r.Context(), user, header.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoFileSelected):
			httputil.WriteBadRequest(w, "No file selected!")
		case errors.Is(err, model.ErrUnsupportedFormat):
			httputil.WriteBadRequest(w, "Invalid file format! (png, jpg, jpeg, gif)")
		default:
			writeUnexpected(w, r, "Failed to upload photo", err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.PhotoResponse{
		Message:      "Profile photo updated successfully!",
		ProfilePhoto: updated.ProfilePhoto,
		User:         updated,
	})
}

// Reset switches the current user back to the default photo
// POST /reset_photo
func (h *PhotoHandler) Reset(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	updated, err := h.photoService.Reset(r.Context(), user)
	if err != nil {
		writeUnexpected(w, r, "Failed to reset photo", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.PhotoResponse{
		Message:      "Profile photo reset to default!",
		ProfilePhoto: updated.ProfilePhoto,
		User:         updated,
	})
}

// Serve streams a stored photo
// GET /profile_photos/{filename}
func (h *PhotoHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	rc, contentType, err := h.photoService.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, model.ErrPhotoNotFound) {
			httputil.WriteNotFound(w, "Photo not found!")
			return
		}
		writeUnexpected(w, r, "Failed to open photo", err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", model.PhotoCacheControl)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		zap.L().Warn("Failed to stream photo", zap.String("photo", name), zap.Error(err))
	}
}
