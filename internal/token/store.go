package token

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"files-manager/internal/apperr"
)

const keyPrefix = "auth_"

// Store issues and resolves opaque session tokens backed by an expiring
// Redis key per token. A token maps to at most one user id.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewStore(client redis.Cmdable, ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Issue generates a random token and stores token -> userID with the
// configured TTL. Collisions on a v4 UUID are not handled.
func (s *Store) Issue(ctx context.Context, userID string) (string, error) {
	tok := uuid.NewString()
	if err := s.client.Set(ctx, keyPrefix+tok, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return tok, nil
}

// Resolve returns the user id a token maps to, or Unauthenticated when
// the token is missing or expired.
func (s *Store) Resolve(ctx context.Context, tok string) (string, error) {
	userID, err := s.client.Get(ctx, keyPrefix+tok).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.Unauthenticated()
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Revoke deletes the token mapping. Revoking an absent token is not an
// error here; callers decide whether that counts as unauthorized.
func (s *Store) Revoke(ctx context.Context, tok string) error {
	return s.client.Del(ctx, keyPrefix+tok).Err()
}
