// Package session holds the authentication token of the signed-in user and
// persists it across runs.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskdesk.com/taskdesk/internal/store"
)

// TokenKey is the key the token is persisted under.
const TokenKey = "token"

type Session struct {
	store store.KeyValueStore

	mu    sync.RWMutex
	token string
}

// New restores any token already present in s.
func New(ctx context.Context, s store.KeyValueStore) (*Session, error) {
	token, err := s.Get(ctx, TokenKey)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	return &Session{store: s, token: token}, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.Token() != ""
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Logout(ctx)
	}

	if err := s.store.Set(ctx, TokenKey, token); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Logout forgets the token locally even if the store fails.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	return s.store.Delete(ctx, TokenKey)
}

// Username reads the subject claim without verifying the signature. The
// server remains the authority on whether the token is still valid.
func (s *Session) Username() string {
	claims, ok := s.claims()
	if !ok {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}

// ExpiresAt reports the token's expiry, if it carries one.
func (s *Session) ExpiresAt() (time.Time, bool) {
	claims, ok := s.claims()
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && !now.Before(exp)
}

func (s *Session) claims() (jwt.MapClaims, bool) {
	token := s.Token()
	if token == "" {
		return nil, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
