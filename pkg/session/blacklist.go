package session

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Blacklist reports whether a token was revoked before its expiry.
type Blacklist interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RedisBlacklist looks up "<prefix><token>" keys written at logout.
type RedisBlacklist struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisBlacklist panics on a nil client.
func NewRedisBlacklist(client redis.UniversalClient, prefix string) *RedisBlacklist {
	if client == nil {
		panic("session: redis client is required")
	}
	return &RedisBlacklist{client: client, prefix: prefix}
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := b.client.Exists(ctx, b.prefix+token).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
