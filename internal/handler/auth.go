package handler

import (
	"errors"
	"net/http"

	"filmix-backend/internal/httputil"
	"filmix-backend/internal/model"
	"filmix-backend/internal/service"
)

// AuthHandler groups registration and login.
type AuthHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		authService: authService,
	}
}

// Register handles user sign-up
// POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingFields):
			httputil.WriteBadRequest(w, "Username, email and password are required!")
		case errors.Is(err, model.ErrUsernameExists):
			httputil.WriteBadRequest(w, "This username is already taken!")
		case errors.Is(err, model.ErrEmailExists):
			httputil.WriteBadRequest(w, "This email address is already registered!")
		case errors.Is(err, model.ErrWeakPassword):
			httputil.WriteBadRequest(w, "Password must be at least 6 characters!")
		case errors.Is(err, model.ErrFieldTooLong):
			httputil.WriteBadRequest(w, "Username or email is too long!")
		default:
			writeUnexpected(w, r, "Failed to register user", err)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, model.UserResponse{
		Message: "User registered successfully!",
		User:    user,
	})
}

// Login handles user login with a username or email
// POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Authenticate(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMissingCredentials):
			httputil.WriteBadRequest(w, "Username and password are required!")
		case errors.Is(err, model.ErrInvalidCredentials):
			httputil.WriteUnauthorized(w, "Invalid username or password!")
		default:
			writeUnexpected(w, r, "Failed to log in", err)
		}
		return
	}

	token, err := h.authService.Issue(user)
	if err != nil {
		writeUnexpected(w, r, "Failed to issue token", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.LoginResponse{
		Message: "Login successful!",
		Token:   token,
		User:    user,
	})
}
