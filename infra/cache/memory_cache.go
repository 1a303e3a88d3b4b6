package cache

import (
	"context"
	"sync"
	"time"

	"github.com/amirasaad/loantrack/pkg/cache"
	"github.com/google/uuid"
)

type memoryEntry struct {
	balance   *cache.CachedBalance
	expiresAt time.Time
}

// MemoryBalanceCache implements cache.BalanceCache with in-memory storage.
// Used in development and tests when no Redis is configured.
type MemoryBalanceCache struct {
	entries   map[uuid.UUID]*memoryEntry
	mu        sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryBalanceCache creates a new in-memory cache and starts its
// cleanup goroutine. Call Close to stop it.
func NewMemoryBalanceCache() *MemoryBalanceCache {
	c := &MemoryBalanceCache{
		entries: make(map[uuid.UUID]*memoryEntry),
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *MemoryBalanceCache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Get retrieves a balance from the cache, or (nil, nil) on a miss.
func (c *MemoryBalanceCache) Get(
	_ context.Context,
	loanID uuid.UUID,
) (*cache.CachedBalance, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[loanID]
	if !exists {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.balance, nil
}

// Set stores a balance with a TTL.
func (c *MemoryBalanceCache) Set(
	_ context.Context,
	loanID uuid.UUID,
	balance *cache.CachedBalance,
	ttl time.Duration,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[loanID] = &memoryEntry{
		balance:   balance,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a balance from the cache.
func (c *MemoryBalanceCache) Delete(
	_ context.Context,
	loanID uuid.UUID,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, loanID)
	return nil
}

func (c *MemoryBalanceCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for id, entry := range c.entries {
				if now.After(entry.expiresAt) {
					delete(c.entries, id)
				}
			}
			c.mu.Unlock()
		}
	}
}
