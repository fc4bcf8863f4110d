package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"filmix-backend/internal/config"
	"filmix-backend/internal/model"
	"filmix-backend/internal/repository"
)

const bearerPrefix = "Bearer "

// AuthService issues and verifies HS256 access tokens.
// Tokens carry no expiry; a token stays valid until the secret rotates
// or its user is deleted.
type AuthService struct {
	users  repository.UserRepository
	secret []byte
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
	}
}

// Issue signs a token for user.
func (s *AuthService) Issue(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify resolves the user behind an Authorization header value. The
// returned error is always model.ErrMissingToken or model.ErrInvalidToken.
func (s *AuthService) Verify(ctx context.Context, header string) (*model.User, error) {
	raw := strings.TrimSpace(header)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix))
	if raw == "" || raw == strings.TrimSpace(bearerPrefix) {
		return nil, model.ErrMissingToken
	}

	user, err := s.resolve(ctx, raw)
	if err != nil {
		zap.L().Debug("Rejected token", zap.Error(err))
		return nil, model.ErrInvalidToken
	}

	return user, nil
}

func (s *AuthService) resolve(ctx context.Context, raw string) (*model.User, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("unexpected claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat != float64(int64(userIDFloat)) {
		return nil, errors.New("missing user_id claim")
	}

	return s.users.GetByID(ctx, int64(userIDFloat))
}
