package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/inmogest/backend/internal/domain/fiscal"
	"github.com/redis/go-redis/v9"
)

const bookKeyPrefix = "inmogest:"

// RedisBookCache stores generated VAT books in Redis. Entries are scoped
// under a common prefix so invalidation can drop every cached book with
// one scan, and expire on their own after the configured TTL.
type RedisBookCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisBookCache creates a new Redis-backed book cache
func NewRedisBookCache(cfg RedisConfig, ttl time.Duration) (*RedisBookCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBookCache{
		client:    client,
		keyPrefix: bookKeyPrefix,
		ttl:       ttl,
	}, nil
}

// NewRedisBookCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisBookCacheWithClient(client *redis.Client, ttl time.Duration) *RedisBookCache {
	return &RedisBookCache{
		client:    client,
		keyPrefix: bookKeyPrefix,
		ttl:       ttl,
	}
}

// GetBook returns the cached book for the key, or (nil, nil) on a miss
func (c *RedisBookCache) GetBook(ctx context.Context, key string) (*fiscal.VATBookResult, error) {
	payload, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cached book: %w", err)
	}

	var book fiscal.VATBookResult
	if err := json.Unmarshal(payload, &book); err != nil {
		// a corrupt entry is treated as a miss after dropping it
		c.client.Del(ctx, c.keyPrefix+key)
		return nil, nil
	}
	return &book, nil
}

// SetBook stores the book under the key with the configured TTL
func (c *RedisBookCache) SetBook(ctx context.Context, key string, book *fiscal.VATBookResult) error {
	payload, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("failed to encode book: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached book: %w", err)
	}
	return nil
}

// InvalidateBooks drops every cached book. Keys are collected with SCAN
// so a large cache never blocks the server.
func (c *RedisBookCache) InvalidateBooks(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.keyPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached books: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to drop cached books: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection
func (c *RedisBookCache) Close() error {
	return c.client.Close()
}
