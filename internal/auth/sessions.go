package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Sessions tracks revoked access tokens and held refresh tokens in
// redis. Revoked entries expire with the token itself so the set
// never grows unbounded.
type Sessions struct {
	client *redis.Client
}

// NewSessions creates a session tracker.
func NewSessions(client *redis.Client) *Sessions {
	return &Sessions{client: client}
}

// Revoke marks an access token unusable until its natural expiry.
func (s *Sessions) Revoke(ctx context.Context, token string, exp time.Time) error {
	ttl := time.Until(exp)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, "revoked:"+token, "1", ttl).Err()
}

// Revoked reports whether a token was revoked at logout.
func (s *Sessions) Revoked(ctx context.Context, token string) bool {
	err := s.client.Get(ctx, "revoked:"+token).Err()
	return err == nil
}

// SaveRefresh stores the current refresh token for an identity,
// replacing any previous one.
func (s *Sessions) SaveRefresh(ctx context.Context, subject, token string, ttl time.Duration) error {
	return s.client.Set(ctx, "refresh:"+subject, token, ttl).Err()
}

// CheckRefresh verifies that the presented refresh token is the one
// currently held for the identity.
func (s *Sessions) CheckRefresh(ctx context.Context, subject, token string) error {
	stored, err := s.client.Get(ctx, "refresh:"+subject).Result()
	if err != nil {
		return errors.New("no active session")
	}
	if stored != token {
		return errors.New("refresh token mismatch")
	}
	return nil
}

// DropRefresh clears the held refresh token on logout.
func (s *Sessions) DropRefresh(ctx context.Context, subject string) error {
	return s.client.Del(ctx, "refresh:"+subject).Err()
}
