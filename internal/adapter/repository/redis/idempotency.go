package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyKeyPrefix = "idempotency:"

// IdempotencyStore stores replayable responses keyed by client supplied
// idempotency keys.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet atomically claims a key. If the key is new it is set to
// response and (false, nil, nil) is returned. If the key was already claimed
// the stored value is returned with exists=true.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := idempotencyKeyPrefix + key

	set, err := s.client.SetNX(ctx, fullKey, response, ttl).Result()
	if err != nil {
		return false, nil, err
	}

	if set {
		return false, nil, nil
	}

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err != nil {
		// Key expired between SetNX and Get. Treat as a fresh claim.
		if err == redis.Nil {
			return false, nil, nil
		}

		return false, nil, err
	}

	return true, existing, nil
}

// Update replaces the stored response for an already claimed key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyKeyPrefix+key, response, ttl).Err()
}
