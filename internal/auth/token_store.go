package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carehub/internal/cache"
	"carehub/internal/model"
)

const refreshTokenKeyPrefix = "refresh_token:"

// ErrSessionNotFound is returned when a refresh token id is unknown or expired.
var ErrSessionNotFound = errors.New("refresh session not found")

// TokenStoreInterface defines refresh session storage.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID string, p Principal, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (Principal, error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore keeps refresh sessions in Redis so logout can revoke them.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

type refreshSession struct {
	UserID uint       `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
}

// StoreRefreshToken stores a refresh session with TTL.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID string, p Principal, ttl time.Duration) error {
	payload, err := json.Marshal(refreshSession{UserID: p.UserID, Email: p.Email, Role: p.Role})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl)
}

// GetRefreshToken loads the principal a refresh token was issued to.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (Principal, error) {
	data, err := s.cache.Get(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil || data == nil {
		return Principal{}, ErrSessionNotFound
	}

	var session refreshSession
	if err := json.Unmarshal(data, &session); err != nil {
		return Principal{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return Principal{UserID: session.UserID, Email: session.Email, Role: session.Role}, nil
}

// DeleteRefreshToken revokes a refresh session.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	return s.cache.Delete(ctx, refreshTokenKeyPrefix+tokenID)
}
