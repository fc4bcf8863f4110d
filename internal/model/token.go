package model

import "errors"

// Token verification errors. Verification never reports anything else,
// whatever the underlying cause.
var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Token API error codes (used in HTTP responses)
const (
	CodeTokenMissing = "TOKEN_MISSING"
	CodeTokenInvalid = "TOKEN_INVALID"
)
