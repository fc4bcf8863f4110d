package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"filmix-backend/internal/httputil"
	"filmix-backend/internal/model"
	"filmix-backend/internal/transport/http/middleware"
)

const bodyTooLargeMessage = "Request body too large!"

// decodeJSON reads the request body into v and writes the error response
// itself when decoding fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if isTooLarge(err) {
			httputil.WriteTooLarge(w, bodyTooLargeMessage)
			return false
		}
		httputil.WriteBadRequest(w, "Invalid request body")
		return false
	}
	return true
}

func isTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}

// currentUser returns the user resolved by the auth middleware. Routes
// mounted without it get a 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*model.User, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorizedWithCode(w, model.CodeTokenMissing, "Token is missing!")
	}
	return user, ok
}

// writeUnexpected logs err and answers with a generic 500.
func writeUnexpected(w http.ResponseWriter, r *http.Request, msg string, err error) {
	zap.L().Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	httputil.WriteInternalError(w, "Internal server error")
}
