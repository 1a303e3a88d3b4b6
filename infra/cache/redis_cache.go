// Package cache provides Redis and in-memory implementations of the balance
// cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/loantrack/pkg/cache"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisBalanceCache implements cache.BalanceCache using Redis.
type RedisBalanceCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisBalanceCache creates a RedisBalanceCache from a Redis URL
// (redis://[user:pass@]host:port/db).
func NewRedisBalanceCache(
	url, prefix string,
	logger *slog.Logger,
) (*RedisBalanceCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedisBalanceCacheWithOptions(opt, prefix, logger), nil
}

// NewRedisBalanceCacheWithOptions creates a RedisBalanceCache from
// redis.Options.
func NewRedisBalanceCacheWithOptions(
	opt *redis.Options,
	prefix string,
	logger *slog.Logger,
) *RedisBalanceCache {
	return &RedisBalanceCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger,
	}
}

func (r *RedisBalanceCache) key(loanID uuid.UUID) string {
	return r.prefix + loanID.String()
}

// Get returns the cached balance, or (nil, nil) on a miss.
func (r *RedisBalanceCache) Get(
	ctx context.Context,
	loanID uuid.UUID,
) (*cache.CachedBalance, error) {
	val, err := r.client.Get(ctx, r.key(loanID)).Result()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis cache miss", "loan_id", loanID)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis cache get error", "loan_id", loanID, "error", err)
		return nil, err
	}
	var balance cache.CachedBalance
	if err := json.Unmarshal([]byte(val), &balance); err != nil {
		r.logger.Error("Redis cache unmarshal error", "loan_id", loanID, "error", err)
		return nil, err
	}
	r.logger.Debug("Redis cache hit", "loan_id", loanID, "balance", balance.Balance)
	return &balance, nil
}

// Set stores the balance with the given TTL.
func (r *RedisBalanceCache) Set(
	ctx context.Context,
	loanID uuid.UUID,
	balance *cache.CachedBalance,
	ttl time.Duration,
) error {
	data, err := json.Marshal(balance)
	if err != nil {
		r.logger.Error("Redis cache marshal error", "loan_id", loanID, "error", err)
		return err
	}
	if err := r.client.Set(ctx, r.key(loanID), data, ttl).Err(); err != nil {
		r.logger.Error("Redis cache set error", "loan_id", loanID, "error", err)
		return err
	}
	r.logger.Debug("Redis cache set", "loan_id", loanID, "balance", balance.Balance, "ttl", ttl)
	return nil
}

// Delete removes the cached balance for a loan.
func (r *RedisBalanceCache) Delete(
	ctx context.Context,
	loanID uuid.UUID,
) error {
	if err := r.client.Del(ctx, r.key(loanID)).Err(); err != nil {
		r.logger.Error("Redis cache delete error", "loan_id", loanID, "error", err)
		return err
	}
	r.logger.Debug("Redis cache delete", "loan_id", loanID)
	return nil
}
