package redisclient

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Allow applies a fixed-window rate limit. The first hit in a window sets the
// expiry; subsequent hits increment the same counter until it rolls over.
func (c *Client) Allow(ctx context.Context, key string, limit int64, window time.Duration) (bool, error) {
	counterKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := c.rdb.Incr(ctx, counterKey).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr failed: %w", err)
	}

	if count == 1 {
		if err := c.rdb.Expire(ctx, counterKey, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire failed: %w", err)
		}
	}

	return count <= limit, nil
}
