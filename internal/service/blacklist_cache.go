package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/interview-coach/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const blacklistKeyPrefix = "token_blacklist:"

// BlacklistCache is a fast path in front of the token_blacklists table.
// A miss is not authoritative.
type BlacklistCache interface {
	Add(ctx context.Context, jti string, ttl time.Duration) error
	Contains(ctx context.Context, jti string) (bool, error)
	Close() error
}

type redisBlacklistCache struct {
	rdb *redis.Client
}

// NewBlacklistCache connects to REDIS_ADDR. Without an address, or when redis
// cannot be reached at start-up, a no-op cache is returned.
func NewBlacklistCache(cfg *config.Config) BlacklistCache {
	if cfg.Redis.Addr == "" {
		return noopBlacklistCache{}
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, token blacklist cache disabled")
		_ = rdb.Close()
		return noopBlacklistCache{}
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("Token blacklist cache connected")
	return NewRedisBlacklistCache(rdb)
}

func NewRedisBlacklistCache(rdb *redis.Client) BlacklistCache {
	return &redisBlacklistCache{rdb: rdb}
}

func (c *redisBlacklistCache) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.rdb.Set(ctx, blacklistKeyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *redisBlacklistCache) Contains(ctx context.Context, jti string) (bool, error) {
	err := c.rdb.Get(ctx, blacklistKeyPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	return true, nil
}

func (c *redisBlacklistCache) Close() error {
	return c.rdb.Close()
}

type noopBlacklistCache struct{}

func (noopBlacklistCache) Add(context.Context, string, time.Duration) error { return nil }
func (noopBlacklistCache) Contains(context.Context, string) (bool, error)   { return false, nil }
func (noopBlacklistCache) Close() error                                     { return nil }
