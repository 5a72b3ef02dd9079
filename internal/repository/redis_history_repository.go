package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisHistoryRepository stores history as a single Redis string value.
type RedisHistoryRepository struct {
	client *redis.Client
}

// NewRedisHistoryRepository constructs the repository.
func NewRedisHistoryRepository(client *redis.Client) *RedisHistoryRepository {
	return &RedisHistoryRepository{client: client}
}

// Read fetches the payload stored under key.
func (r *RedisHistoryRepository) Read(ctx context.Context, key string) ([]byte, error) {
	if r.client == nil {
		return nil, ErrHistoryNotFound
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrHistoryNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Write stores payload under key without expiry.
func (r *RedisHistoryRepository) Write(ctx context.Context, key string, payload []byte) error {
	if r.client == nil {
		return fmt.Errorf("redis set %s: client not configured", key)
	}
	if err := r.client.Set(ctx, key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisHistoryRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
