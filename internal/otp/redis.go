package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rojgari/candidate-intake/internal/config"
)

const redisKeyPrefix = "otp:"

// RedisStore is the primary Store implementation; TTL eviction is
// delegated to Redis key expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects a Redis-backed Store and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromClient wraps an existing client. Intended for tests.
func NewRedisStoreFromClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Set stores a hash with TTL, overwriting any previous code.
func (s *RedisStore) Set(ctx context.Context, email, hash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, redisKeyPrefix+email, hash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store otp code: %w", err)
	}
	return nil
}

// Get returns the stored hash or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, email string) (string, error) {
	hash, err := s.client.Get(ctx, redisKeyPrefix+email).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read otp code: %w", err)
	}
	return hash, nil
}

// Delete removes the entry for the email, if any.
func (s *RedisStore) Delete(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+email).Err(); err != nil {
		return fmt.Errorf("failed to delete otp code: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
