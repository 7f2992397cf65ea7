// Package token issues and resolves session tokens. A token embeds the
// identity and the role held at authentication time; the embedded role is
// authoritative for the token's lifetime, so a persisted role change takes
// effect only on the next issuance.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"courtside/internal/domain"
)

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a token manager. The secret must be non-empty; ttl <= 0
// falls back to 12 hours.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue creates a signed token for the user, embedding the role currently
// persisted for the account. The role claim must come from storage, never
// from client input.
func (m *Manager) Issue(u *domain.User) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"name": u.Name,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Resolve verifies a token and returns the principal it carries.
// Any parse, signature, or expiry failure yields UnauthenticatedError; an
// unknown role claim is normalized to the lowest privilege, never elevated.
func (m *Manager) Resolve(_ context.Context, tokenString string) (domain.ContextPrincipal, error) {
	tok, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return domain.ContextPrincipal{}, domain.ErrUnauthenticated("token verification failed: %v", err)
	}

	raw, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return domain.ContextPrincipal{}, domain.ErrUnauthenticated("unsupported claim type %T", tok.Claims)
	}

	sub, _ := raw["sub"].(string)
	if sub == "" {
		return domain.ContextPrincipal{}, domain.ErrUnauthenticated("token has no subject")
	}

	p := domain.ContextPrincipal{ID: sub}
	if name, ok := raw["name"].(string); ok {
		p.Name = name
	}
	role, _ := raw["role"].(string)
	p.Role = domain.Role(role).Normalize()

	return p, nil
}
