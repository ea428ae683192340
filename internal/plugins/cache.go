package plugins

import (
	"context"
	"time"

	"github.com/go-redis/redis/v9"
)

type RedisConfig struct {
	Endpoint string `toml:"endpoint"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// RedisCache backs the read view cache. Misses are not errors.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(cfg RedisConfig) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Endpoint,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *RedisCache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	return c.client.Set(ctx, key, value, expiresAt).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// NoneCache keeps the selfhost mode runnable without redis, every read is a
// miss.
type NoneCache struct{}

func (c *NoneCache) SetEx(ctx context.Context, key, value string, expiresAt time.Duration) error {
	return nil
}

func (c *NoneCache) Get(ctx context.Context, key string) (string, error) {
	return "", nil
}

func (c *NoneCache) Del(ctx context.Context, keys ...string) error {
	return nil
}
