package cache

import (
	"context"
	"fmt"
	"time"

	"go-calendar-api/core/config"
	"go-calendar-api/core/constants"
	"go-calendar-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache is the Redis-backed volatile store shared across modules: OAuth state
// nonces, session token blacklist, login throttling, and per-user note hashes.
type Cache interface {
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error

	HSet(ctx context.Context, key, field, value string) error
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error

	SetOAuthState(ctx context.Context, state string) error
	ConsumeOAuthState(ctx context.Context, state string) (bool, error)

	AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)

	IncrementLoginAttempt(ctx context.Context, identifier string) (int64, error)
	IsLoginBlocked(ctx context.Context, identifier string) (bool, error)
}

type redisCache struct {
	client *redis.Client
}

func New(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultRequestTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Cache:Connected", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func (c *redisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *redisCache) Del(ctx context.Context, keys ...string) error {
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

func (c *redisCache) HSet(ctx context.Context, key, field, value string) error {
	return c.client.HSet(ctx, key, field, value).Err()
}

func (c *redisCache) HGet(ctx context.Context, key, field string) (string, error) {
	val, err := c.client.HGet(ctx, key, field).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (c *redisCache) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return c.client.HGetAll(ctx, key).Result()
}

func (c *redisCache) HDel(ctx context.Context, key string, fields ...string) error {
	return c.client.HDel(ctx, key, fields...).Err()
}

func (c *redisCache) SetOAuthState(ctx context.Context, state string) error {
	return c.client.Set(ctx, constants.RedisKeyOAuthState+state, "1", constants.OAuthStateTTL).Err()
}

// ConsumeOAuthState verifies and deletes a state nonce in one pass so a code
// callback can only be replayed once.
func (c *redisCache) ConsumeOAuthState(ctx context.Context, state string) (bool, error) {
	n, err := c.client.Del(ctx, constants.RedisKeyOAuthState+state).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return c.client.Set(ctx, constants.RedisKeyTokenBlacklist+token, "1", ttl).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, constants.RedisKeyTokenBlacklist+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) IncrementLoginAttempt(ctx context.Context, identifier string) (int64, error) {
	key := constants.RedisKeyLoginAttempt + identifier
	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		_ = c.client.Expire(ctx, key, constants.BlockDuration).Err()
	}
	return n, nil
}

func (c *redisCache) IsLoginBlocked(ctx context.Context, identifier string) (bool, error) {
	val, err := c.client.Get(ctx, constants.RedisKeyLoginAttempt+identifier).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val >= constants.MaxLoginAttempts, nil
}
