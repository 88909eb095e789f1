// Package redis persists category membership and carries the admission event
// bus connection. Every key is namespaced by the configured prefix.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flowforge/diskgate/pkg/config"
)

const connectTimeout = 5 * time.Second

// ErrNotConfigured is returned by NewClient when no addresses are set.
var ErrNotConfigured = errors.New("redis: no addresses configured")

// Client owns the connection shared by the category store and the event bus.
type Client struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewClient connects to a single node, or to a cluster when ClusterMode is
// set, and verifies the connection with a bounded PING. DB is ignored in
// cluster mode.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, ErrNotConfigured
	}

	var rdb redis.UniversalClient
	if cfg.ClusterMode {
		rdb = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.Addresses,
			Password: cfg.Password,
			PoolSize: cfg.PoolSize,
		})
	} else {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Addresses[0],
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		})
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %v: %w", cfg.Addresses, err)
	}

	return &Client{rdb: rdb, prefix: cfg.KeyPrefix}, nil
}

// Client exposes the underlying connection, e.g. for the event bus.
func (c *Client) Client() redis.UniversalClient {
	return c.rdb
}

// Categories returns a category store using the configured key prefix.
func (c *Client) Categories() *CategoryStore {
	return NewCategoryStore(c.rdb, c.prefix)
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
