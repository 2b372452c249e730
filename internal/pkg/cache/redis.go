package cache

import (
	"context"
	"time"

	pkgredis "github.com/project-clarion/core/internal/pkg/redis"
)

// Redis is the Redis-backed Store backend. Expiry rides on Redis native
// TTL; entries share the same lifetime semantics as the memory backend.
type Redis struct {
	client *pkgredis.Client
	ttl    time.Duration
	prefix string
}

// NewRedis wraps a connected Redis client as a Store.
func NewRedis(client *pkgredis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl, prefix: "verdict:"}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return r.client.Get(ctx, r.prefix+key)
}

func (r *Redis) Put(ctx context.Context, key string, val []byte) error {
	return r.client.Set(ctx, r.prefix+key, val, r.ttl)
}
