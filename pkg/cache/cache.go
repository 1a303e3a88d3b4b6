// Package cache defines the balance cache contract. Implementations live in
// infra/cache.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CachedBalance is a snapshot of a loan's outstanding balance.
type CachedBalance struct {
	Balance    int64     `json:"balance"`
	ComputedAt time.Time `json:"computed_at"`
}

// BalanceCache caches derived loan balances. The cache is an optimization
// only: entries carry a TTL and are invalidated on every payment write, and
// the persisted records remain the source of truth.
type BalanceCache interface {
	// Get returns the cached balance for a loan, or (nil, nil) on a miss.
	Get(ctx context.Context, loanID uuid.UUID) (*CachedBalance, error)

	// Set stores the balance for a loan with the given TTL.
	Set(ctx context.Context, loanID uuid.UUID, balance *CachedBalance, ttl time.Duration) error

	// Delete removes the cached balance for a loan.
	Delete(ctx context.Context, loanID uuid.UUID) error
}
