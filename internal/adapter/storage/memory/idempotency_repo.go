package memory

import (
	"context"
	"sync"
	"time"

	"digital-asset-gateway/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// IdempotencyRepo is an in-memory ports.IdempotencyRepository.
type IdempotencyRepo struct {
	mu   sync.RWMutex
	logs map[string]*domain.IdempotencyLog
}

// NewIdempotencyRepo creates an empty in-memory idempotency repository.
func NewIdempotencyRepo() *IdempotencyRepo {
	return &IdempotencyRepo{logs: make(map[string]*domain.IdempotencyLog)}
}

func (r *IdempotencyRepo) Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *log
	r.logs[log.Key] = &cp
	return nil
}

func (r *IdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.logs[key]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

// MemoryIdempotencyCache is an in-process stand-in for the Redis cache
// layer, used when the gateway runs on the memory driver.
type MemoryIdempotencyCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewIdempotencyCache creates an empty in-process idempotency cache.
func NewIdempotencyCache() *MemoryIdempotencyCache {
	return &MemoryIdempotencyCache{entries: make(map[string]cacheEntry)}
}

func (c *MemoryIdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, nil
	}
	return e.value, nil
}

func (c *MemoryIdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}
