package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/infrastructure/config"
	"github.com/namorima/notion-todo/internal/infrastructure/logger"
	"github.com/namorima/notion-todo/internal/ports"
)

func newTestAuth(password string) *AuthService {
	svc := NewAuthService(config.AuthConfig{Password: password}, newTestCodec(), logger.NewNop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := HashPassword("rahsia")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		configured string
		given      string
		wantErr    error
	}{
		{"plain match", "akmal", "akmal", nil},
		{"plain mismatch", "akmal", "akmal ", entities.ErrInvalidPassword},
		{"bcrypt match", hashed, "rahsia", nil},
		{"bcrypt mismatch", hashed, "salah", entities.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuth(tt.configured)
			resp, err := svc.Login(context.Background(), ports.LoginRequest{Password: tt.given})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Login() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if resp.Message != "Login successful" || resp.Token == "" {
				t.Errorf("response = %+v", resp)
			}

			payload, err := svc.ValidateToken(resp.Token)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if !payload.Authenticated || payload.Timestamp != fixedNow.UnixMilli() {
				t.Errorf("payload = %+v", payload)
			}
		})
	}
}

func TestAuthService_LoginRequiresPassword(t *testing.T) {
	_, err := newTestAuth("akmal").Login(context.Background(), ports.LoginRequest{})

	var vErr *entities.ValidationError
	if !errors.As(err, &vErr) || vErr.Message != "Password is required" {
		t.Fatalf("Login() error = %v", err)
	}
}

func TestAuthService_RejectsUnauthenticatedPayload(t *testing.T) {
	svc := newTestAuth("akmal")
	token, _, err := svc.codec.Issue(ports.SessionPayload{Authenticated: false})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ValidateToken(token); !errors.Is(err, entities.ErrInvalidToken) {
		t.Fatalf("ValidateToken() error = %v", err)
	}
}
