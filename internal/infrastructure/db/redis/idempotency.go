package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore maps a client Idempotency-Key to the post it created.
// Key format: idem:post:<user_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. Keys expire after ttl (24h when <= 0).
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the post id previously remembered for this user and key.
func (s *IdempotencyStore) Lookup(ctx context.Context, userID, key string) (string, bool, error) {
	postID, err := s.client.Get(ctx, s.key(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return postID, true, nil
}

// Remember records postID for this user and key. An existing entry is kept.
func (s *IdempotencyStore) Remember(ctx context.Context, userID, key, postID string) error {
	return s.client.SetNX(ctx, s.key(userID, key), postID, s.ttl).Err()
}

func (s *IdempotencyStore) key(userID, key string) string {
	return fmt.Sprintf("idem:post:%s:%s", userID, key)
}
