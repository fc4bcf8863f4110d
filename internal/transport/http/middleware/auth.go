package middleware

import (
	"context"
	"errors"
	"net/http"

	"filmix-backend/internal/httputil"
	"filmix-backend/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// UserKey is the context key for the authenticated *model.User
	UserKey contextKey = "user"
)

// TokenVerifier resolves the user behind an Authorization header.
type TokenVerifier interface {
	Verify(ctx context.Context, header string) (*model.User, error)
}

// AuthMiddleware rejects requests without a valid token and stores the
// resolved user in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := verifier.Verify(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				if errors.Is(err, model.ErrMissingToken) {
					httputil.WriteUnauthorizedWithCode(w, model.CodeTokenMissing, "Token is missing!")
					return
				}
				httputil.WriteUnauthorizedWithCode(w, model.CodeTokenInvalid, "Invalid token!")
				return
			}

			if info := requestInfoFrom(r.Context()); info != nil {
				info.userID = user.ID
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated user from the request context
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey).(*model.User)
	return user, ok && user != nil
}
