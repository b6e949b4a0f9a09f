package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pantrychef/v1/internal/ports/outbound"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// CacheRepository is an in-memory reply cache with TTL expiry
type CacheRepository struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewCacheRepository creates an empty in-memory cache
func NewCacheRepository() outbound.CacheRepository {
	return &CacheRepository{
		entries: make(map[string]cacheEntry),
	}
}

// Get returns a cached value, or ErrCacheMiss when absent or expired
func (c *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, outbound.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, outbound.ErrCacheMiss
	}

	return entry.value, nil
}

// Set stores a value; a zero TTL never expires
func (c *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := cacheEntry{value: value}
	if ttl != 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}
