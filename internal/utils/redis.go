package utils

import (
	"context" // Context for the connection check
	"fmt"     // Error wrapping
	"time"    // Timeouts

	"github.com/redis/go-redis/v9" // Redis client
)

// RedisOptions holds the connection settings of the lock store
type RedisOptions struct {
	Addr     string // Redis server address
	Password string // Redis password
	DB       int    // Redis database number
	PoolSize int    // Connection pool size
}

// NewRedisClient connects to Redis and verifies the connection with PING
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,       // Redis server address
		Password:     opts.Password,   // Redis password
		DB:           opts.DB,         // Redis database number
		PoolSize:     opts.PoolSize,   // Pool size
		DialTimeout:  5 * time.Second, // Connection timeout
		ReadTimeout:  3 * time.Second, // Per-command read timeout
		WriteTimeout: 3 * time.Second, // Per-command write timeout
	})
	// Test Redis connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}
