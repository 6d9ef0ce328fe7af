package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix     = "idem:booking:"
	defaultIdempotencyTTL = 24 * time.Hour
)

// IdempotencyStore maps client-scoped idempotency keys to booking IDs.
// Key format: idem:booking:<client_id>:<key>
type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	id, err := s.client.Get(ctx, idempotencyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember stores the mapping unless the key is already taken; the first
// booking for a key wins. stored is false when another booking holds the key.
func (s *IdempotencyStore) Remember(ctx context.Context, key, bookingID string) (bool, error) {
	stored, err := s.client.SetNX(ctx, idempotencyPrefix+key, bookingID, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency remember: %w", err)
	}
	return stored, nil
}
