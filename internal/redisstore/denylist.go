// Package redisstore keeps revoked token ids in Redis until the tokens
// would have expired anyway, so a logged-out token cannot be replayed.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist is a redis-backed revocation set keyed by token jti.
type Denylist struct {
	client *redis.Client
}

// NewDenylist returns redis-backed denylist.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

func (d *Denylist) key(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// Revoke marks the token id revoked for ttl.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return d.client.Set(ctx, d.key(jti), "1", ttl).Err()
}

// IsRevoked reports whether the token id has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
