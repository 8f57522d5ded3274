package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

// AuthService handles the shared-password login
type AuthService struct {
	password string
	codec    *TokenCodec
	logger   *logger.Logger
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig, codec *TokenCodec, logger *logger.Logger) *AuthService {
	return &AuthService{
		password: cfg.Password,
		codec:    codec,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the password and returns a fresh session token
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.LoginResponse, error) {
	if req.Password == "" {
		return nil, entities.NewValidationError("password", "Password is required")
	}

	if !s.checkPassword(req.Password) {
		s.logger.Warnw("Login attempt with invalid password")
		return nil, entities.ErrInvalidPassword
	}

	token, payload, err := s.codec.Issue(ports.SessionPayload{
		Authenticated: true,
		Timestamp:     s.now().UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Infow("Login successful", "expires_at", payload.ExpiresAt)

	return &ports.LoginResponse{
		Token:     token,
		ExpiresAt: payload.ExpiresAt,
		Message:   "Login successful",
	}, nil
}

// ValidateToken verifies a session token
func (s *AuthService) ValidateToken(token string) (*ports.SessionPayload, error) {
	payload, err := s.codec.Verify(token)
	if err != nil {
		return nil, err
	}
	if !payload.Authenticated {
		return nil, entities.ErrInvalidToken
	}
	return payload, nil
}

// checkPassword accepts either a bcrypt hash or a plain configured password.
func (s *AuthService) checkPassword(candidate string) bool {
	if isBcryptHash(s.password) {
		return bcrypt.CompareHashAndPassword([]byte(s.password), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.password), []byte(candidate)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}

// HashPassword returns a bcrypt hash suitable for APP_PASSWORD
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
