package handler

import (
	"errors"
	"net/http"

	"filmix-backend/internal/httputil"
	"filmix-backend/internal/model"
	"filmix-backend/internal/service"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile returns the current user
// GET /profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.UserResponse{User: user})
}

// UpdateProfile changes username and/or email
// PUT /profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteBadRequest(w, "This username is already taken!")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteBadRequest(w, "This email address is already registered!")
		case errors.Is(err, model.ErrInvalidField):
			httputil.WriteBadRequest(w, "Username and email cannot be empty!")
		case errors.Is(err, model.ErrFieldTooLong):
			httputil.WriteBadRequest(w, "Username or email is too long!")
		default:
			writeUnexpected(w, r, "Failed to update profile", err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.UserResponse{
		Message: "Profile updated successfully!",
		User:    updated,
	})
}

// ChangePassword replaces the password after checking the current one
// POST /change_password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req model.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.userService.ChangePassword(r.Context(), user, &req); err != nil {
		switch {
		case errors.Is(err, model.ErrMissingPassword):
			httputil.WriteBadRequest(w, "Current password and new password are required!")
		case errors.Is(err, model.ErrIncorrectPassword):
			httputil.WriteBadRequest(w, "Current password is incorrect!")
		case errors.Is(err, model.ErrWeakPassword):
			httputil.WriteBadRequest(w, "New password must be at least 6 characters!")
		default:
			writeUnexpected(w, r, "Failed to change password", err)
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Password changed successfully!")
}
