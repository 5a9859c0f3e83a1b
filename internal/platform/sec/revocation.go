// Copyright (c) 2026 Shelfmark. All rights reserved.

package sec

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shelfmark/shelfmark/internal/platform/constants"
)

// RevocationStore answers whether a token ID has been invalidated by the
// session provider before its natural expiry.
//
// # Why an interface?
//
// The verifier only needs a read-side lookup. Defining the interface here
// decouples [TokenVerifier] from Redis and allows in-memory fakes in tests.
type RevocationStore interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocationStore implements RevocationStore against the Redis keyspace
// the session provider writes revocations into.
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore creates a Redis-backed RevocationStore.
func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// IsRevoked reports whether the token ID is present in the revocation keyspace.
//
// A missing key means the token is still live. Connectivity errors propagate
// so the caller can refuse the token rather than silently trusting it.
func (store *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := constants.RedisPrefixRevokedSession + tokenID

	if err := store.client.Get(ctx, key).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis_revocation_get_failed: %w", err)
	}

	return true, nil
}
