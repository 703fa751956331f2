package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers which post an (actor, Idempotency-Key) pair
// created. Key format: idem:<actor>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: idempotencyTTL}
}

// Lookup returns the post id stored for the pair, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, actorID, key string) (string, bool, error) {
	postID, err := s.client.Get(ctx, s.key(actorID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return postID, true, nil
}

// Remember records the post created for the pair (expires after ttl). An
// existing entry is kept so the first post wins.
func (s *IdempotencyStore) Remember(ctx context.Context, actorID, key, postID string) error {
	if err := s.client.SetNX(ctx, s.key(actorID, key), postID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(actorID, key string) string {
	return fmt.Sprintf("idem:%s:%s", actorID, key)
}
