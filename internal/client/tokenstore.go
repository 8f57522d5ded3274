package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the key the session token is stored under.
const TokenKey = "notion_manager_token"

var (
	ErrNoToken      = errors.New("no stored session token")
	ErrTokenExpired = errors.New("session token expired")
	ErrTokenInvalid = errors.New("malformed session token")
)

// TokenStore persists the session token between runs.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a small JSON document.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load returns "" when nothing is stored.
func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	var doc map[string]string
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("decode token file: %w", err)
	}
	return doc[TokenKey], nil
}

func (s *FileTokenStore) Save(token string) error {
	data, err := json.MarshalIndent(map[string]string{TokenKey: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileTokenStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// CheckToken is the local fast check run before a load: three segments, a
// decodable payload and an expiry not yet passed. The signature is not
// checked here; the server stays the authority on every request.
func CheckToken(token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrNoToken
	}
	if strings.Count(token, ".") != 2 {
		return ErrTokenInvalid
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ErrTokenInvalid
	}
	if exp.Before(now) {
		return ErrTokenExpired
	}
	return nil
}
