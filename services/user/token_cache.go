package user

import (
	"context"
	"errors"
	"time"

	"patitas/utils"

	"github.com/go-redis/redis/v8"
)

// TokenCache stores the hash of each user's active token. A token whose hash
// is absent or different has been revoked.
type TokenCache interface {
	StoreTokenHash(ctx context.Context, userID, hash string, ttl time.Duration) error
	TokenHash(ctx context.Context, userID string) (string, error)
	DeleteTokenHash(ctx context.Context, userID string) error
}

// RedisTokenCache is the production TokenCache.
type RedisTokenCache struct {
	Client *redis.Client
}

func (c *RedisTokenCache) StoreTokenHash(ctx context.Context, userID, hash string, ttl time.Duration) error {
	return c.Client.Set(ctx, utils.AuthCachePrefix+userID, hash, ttl).Err()
}

func (c *RedisTokenCache) TokenHash(ctx context.Context, userID string) (string, error) {
	hash, err := c.Client.Get(ctx, utils.AuthCachePrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return hash, err
}

func (c *RedisTokenCache) DeleteTokenHash(ctx context.Context, userID string) error {
	return c.Client.Del(ctx, utils.AuthCachePrefix+userID).Err()
}
