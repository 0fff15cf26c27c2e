package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "placementportal:revoked:"

// RedisRevocationStore keeps revocations as keys expiring with their token
type RedisRevocationStore struct {
	client redis.UniversalClient
}

// NewRedisRevocationStore creates a new RedisRevocationStore
func NewRedisRevocationStore(client redis.UniversalClient) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

// Revoke marks the token id as signed out until expiresAt
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id was signed out
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}
	return n > 0, nil
}
