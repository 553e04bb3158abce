package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// Publish sends payload on the given channel.
func (c *redisImpl) Publish(ctx context.Context, channel string, payload any) error {
	return c.client.Publish(ctx, channel, payload).Err()
}

// Ping checks if the connection is alive.
func (c *redisImpl) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *redisImpl) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying go-redis client.
func (c *redisImpl) GetClient() *goredis.Client {
	return c.client
}
