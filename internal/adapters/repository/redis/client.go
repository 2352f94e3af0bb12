// Package redis stores events, turfs and phone bindings as JSON values in
// Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "turfvote:"
	eventsSetKey = keyPrefix + "events"
	turfsHashKey = keyPrefix + "turfs"

	// BindingTTL bounds how long an invitation keeps routing replies.
	BindingTTL = 30 * 24 * time.Hour
)

func eventKey(id string) string {
	return keyPrefix + "event:" + id
}

func bindingKey(phone string) string {
	return keyPrefix + "binding:" + phone
}

// NewClient connects using a redis:// URL, falling back to treating url as
// a plain host:port address.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{
			Addr: url,
		}
	}

	opts.PoolSize = 20
	opts.MinIdleConns = 2
	opts.MaxRetries = 3

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
