package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist stores revoked JWT ids in Redis. Keys expire when the token
// would have expired anyway, so cleanup is purely TTL-driven.
// Key format: revoked:<jti>
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks the token id as revoked for ttl (the token's remaining life).
func (d *TokenDenylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := d.client.Set(ctx, d.key(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("denylist revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) key(jti string) string {
	return "revoked:" + jti
}
