package memory

import (
	"context"
	"sync"
	"time"

	"digital-asset-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BalanceRepo is an in-memory ports.BalanceRepository. A single mutex
// guards the map; per-user row locks acquired by GetByUserIDForUpdate
// and held through the tx serialize whole read-modify-write cycles the
// way the postgres driver's FOR UPDATE does.
type BalanceRepo struct {
	mu       sync.RWMutex
	rows     rowLocks
	balances map[uuid.UUID]*domain.RewardBalance
}

// NewBalanceRepo creates an empty in-memory balance repository.
func NewBalanceRepo() *BalanceRepo {
	return &BalanceRepo{balances: make(map[uuid.UUID]*domain.RewardBalance)}
}

func (r *BalanceRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.RewardBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.balances[userID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *BalanceRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.RewardBalance, error) {
	r.rows.acquire(tx, userID)
	return r.GetByUserID(ctx, userID)
}

func (r *BalanceRepo) Create(ctx context.Context, tx pgx.Tx, balance *domain.RewardBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *balance
	r.balances[balance.UserID] = &cp
	return nil
}

func (r *BalanceRepo) UpdateBuckets(ctx context.Context, tx pgx.Tx, userID uuid.UUID, available, locked decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.balances[userID]
	if !ok {
		b = domain.NewRewardBalance(userID, time.Now().UTC())
		r.balances[userID] = b
	}
	b.Available = available
	b.Locked = locked
	b.UpdatedAt = time.Now().UTC()
	return nil
}
