package cache

import (
	"context"
	"sync"
	"time"

	"github.com/inmogest/backend/internal/domain/fiscal"
)

type bookEntry struct {
	book      *fiscal.VATBookResult
	expiresAt time.Time
}

// InMemoryBookCache implements the book cache with an in-memory map.
// Suitable for single-instance deployments and testing; a clustered
// deployment needs the Redis cache so invalidation reaches every node.
type InMemoryBookCache struct {
	mu      sync.RWMutex
	entries map[string]bookEntry
	ttl     time.Duration
}

// NewInMemoryBookCache creates a new in-memory book cache
func NewInMemoryBookCache(ttl time.Duration) *InMemoryBookCache {
	return &InMemoryBookCache{
		entries: make(map[string]bookEntry),
		ttl:     ttl,
	}
}

// GetBook returns the cached book for the key, or (nil, nil) on a miss
func (c *InMemoryBookCache) GetBook(_ context.Context, key string) (*fiscal.VATBookResult, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.book, nil
}

// SetBook stores the book under the key with the configured TTL
func (c *InMemoryBookCache) SetBook(_ context.Context, key string, book *fiscal.VATBookResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = bookEntry{book: book, expiresAt: time.Now().Add(c.ttl)}
	return nil
}

// InvalidateBooks drops every cached book
func (c *InMemoryBookCache) InvalidateBooks(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]bookEntry)
	return nil
}
