// Package session issues and validates the signed, stateless session token
// held in the browser cookie. The token is an HS256 JWT: either it verifies
// against the process-wide secret and is unexpired, or it is treated as
// absent. No server-side row backs it and there is no revocation.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// MinSecretLength is the minimum accepted secret size for HMAC-SHA256.
const MinSecretLength = 32

// Claims are the identity claims carried by a session token.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c *Claims) UserID() string {
	return c.Subject
}

// Result is the tagged outcome of validating a token. Validation never
// returns an error: absent, malformed, expired and badly signed tokens all
// normalize to Valid == false with nil Claims.
type Result struct {
	Valid  bool
	Claims *Claims
}

// Manager signs and verifies session tokens with a process-wide secret.
// The secret is read once at startup; rotating it requires a restart.
// Managers are safe for concurrent use.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a session manager. The secret must be at least
// MinSecretLength bytes and the TTL positive.
func NewManager(secret []byte, ttl time.Duration) (*Manager, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, errors.New("session TTL must be greater than 0")
	}
	return &Manager{secret: secret, ttl: ttl}, nil
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a signed session token for the given user.
func (m *Manager) Issue(userID, email, name string) (string, error) {
	now := NowTimeFunc()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate checks a raw cookie value and returns a tagged result. An
// absent, malformed, expired or badly signed token is invalid; none of
// these conditions are errors and Validate never panics.
func (m *Manager) Validate(tokenString string) Result {
	if tokenString == "" {
		return Result{}
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return NowTimeFunc() }))
	if err != nil || !parsed.Valid {
		return Result{}
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return Result{}
	}
	return Result{Valid: true, Claims: claims}
}
