package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

// DefaultTokenTTL is the session lifetime when none is configured.
const DefaultTokenTTL = 24 * time.Hour

// Claims represents the session token claims
type Claims struct {
	Authenticated bool  `json:"authenticated"`
	Timestamp     int64 `json:"timestamp"`
	jwt.RegisteredClaims
}

// TokenCodec issues and verifies HS256 session tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec. A zero ttl means DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock replaces the time source.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	c.now = now
	return c
}

// Issue signs payload with IssuedAt now and ExpiresAt now+TTL.
func (c *TokenCodec) Issue(payload ports.SessionPayload) (string, *ports.SessionPayload, error) {
	now := c.now()
	return c.IssueWithExpiry(payload, now, now.Add(c.ttl))
}

// IssueWithExpiry signs payload with explicit timestamps.
func (c *TokenCodec) IssueWithExpiry(payload ports.SessionPayload, issuedAt, expiresAt time.Time) (string, *ports.SessionPayload, error) {
	payload.IssuedAt = issuedAt.Truncate(time.Second)
	payload.ExpiresAt = expiresAt.Truncate(time.Second)

	claims := &Claims{
		Authenticated: payload.Authenticated,
		Timestamp:     payload.Timestamp,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(payload.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(payload.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, &payload, nil
}

// Verify checks the signature and expiry. A token is rejected only once its
// expiry instant has passed. Every failure is ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (*ports.SessionPayload, error) {
	// Expiry is checked below; jwt's own check rejects now == exp.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, errors.Join(entities.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, entities.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, errors.Join(entities.ErrInvalidToken, jwt.ErrTokenRequiredClaimMissing)
	}
	if claims.ExpiresAt.Time.Before(c.now()) {
		return nil, errors.Join(entities.ErrInvalidToken, jwt.ErrTokenExpired)
	}

	payload := &ports.SessionPayload{
		Authenticated: claims.Authenticated,
		Timestamp:     claims.Timestamp,
		ExpiresAt:     claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	return payload, nil
}
