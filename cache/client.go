// Package cache wraps the Redis client used for statement and balance
// view caching. Entries are opaque byte payloads; callers own the
// serialization. Every read is tallied so /metrics can report hit rates.
package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/yashasviy/overdraft-ledger-api/config"
)

// ErrMiss reports a clean cache miss: the key is absent, Redis itself
// answered fine.
var ErrMiss = errors.New("cache: key not found")

const connectAttempts = 3

// Stats is a point-in-time snapshot of read traffic. HitRate is a
// percentage rounded to two decimals.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hitRate"`
}

// Client is safe for concurrent use.
type Client struct {
	rdb        *redis.Client
	cmdTimeout time.Duration
	log        zerolog.Logger

	hits   uint64
	misses uint64
}

// Connect dials Redis and verifies the connection, retrying with a
// doubling delay before giving up.
func Connect(cfg config.Config, log zerolog.Logger) (*Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.PoolSize = cfg.RedisPoolSize
	opts.DialTimeout = cfg.ConnectionTimeout
	opts.ReadTimeout = cfg.CommandTimeout
	opts.WriteTimeout = cfg.CommandTimeout

	rdb := redis.NewClient(opts)

	delay := time.Second
	for attempt := 1; ; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectionTimeout)
		err = rdb.Ping(ctx).Err()
		cancel()
		if err == nil {
			break
		}
		if attempt == connectAttempts {
			rdb.Close()
			return nil, fmt.Errorf("ping redis after %d attempts: %w", connectAttempts, err)
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).Msg("redis not ready")
		time.Sleep(delay)
		delay *= 2
	}

	log.Info().Int("pool_size", opts.PoolSize).Msg("redis connected")
	return &Client{rdb: rdb, cmdTimeout: cfg.CommandTimeout, log: log}, nil
}

// Get returns the payload stored under key, or ErrMiss if the key is
// absent. Only clean misses bump the miss counter; transport errors
// count as neither hit nor miss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		atomic.AddUint64(&c.misses, 1)
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	atomic.AddUint64(&c.hits, 1)
	return val, nil
}

// SetWithTTL stores val under key with the given expiry.
func (c *Client) SetWithTTL(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.Set(ctx, key, val, ttl).Err()
}

// Delete removes the given keys. Missing keys are not an error.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.Del(ctx, keys...).Err()
}

// Stats snapshots the hit and miss counters.
func (c *Client) Stats() Stats {
	hits := atomic.LoadUint64(&c.hits)
	misses := atomic.LoadUint64(&c.misses)
	s := Stats{Hits: hits, Misses: misses}
	if total := hits + misses; total > 0 {
		s.HitRate = math.Round(float64(hits)/float64(total)*10000) / 100
	}
	return s
}

// KeyCount reports how many keys the Redis database currently holds.
func (c *Client) KeyCount(ctx context.Context) (int64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.DBSize(ctx).Result()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.cmdTimeout)
}
