package memory

import (
	"context"
	"sync"
	"time"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// StakingRepo is an in-memory ports.StakingRepository.
type StakingRepo struct {
	mu        sync.RWMutex
	contracts map[uuid.UUID]*domain.StakingContract
}

// NewStakingRepo creates an empty in-memory staking repository.
func NewStakingRepo() *StakingRepo {
	return &StakingRepo{contracts: make(map[uuid.UUID]*domain.StakingContract)}
}

func (r *StakingRepo) Create(ctx context.Context, tx pgx.Tx, contract *domain.StakingContract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := copyContract(contract)
	r.contracts[contract.StakingID] = cp
	return nil
}

func (r *StakingRepo) GetByID(ctx context.Context, stakingID uuid.UUID) (*domain.StakingContract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contracts[stakingID]
	if !ok {
		return nil, nil
	}
	return copyContract(c), nil
}

func (r *StakingRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.StakingContract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.StakingContract
	for _, c := range r.contracts {
		if c.UserID == userID && c.Status == domain.StakingStatusActive {
			out = append(out, *copyContract(c))
		}
	}
	return out, nil
}

// Complete is compare-and-swap on status: only an active contract
// transitions, so a raced double unstake loses here.
func (r *StakingRepo) Complete(ctx context.Context, tx pgx.Tx, stakingID uuid.UUID, actualReward, penalty decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contracts[stakingID]
	if !ok || c.Status != domain.StakingStatusActive {
		return ports.ErrNoRowsAffected
	}
	c.Status = domain.StakingStatusCompleted
	c.ActualReward = &actualReward
	c.Penalty = &penalty
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func copyContract(c *domain.StakingContract) *domain.StakingContract {
	cp := *c
	if c.ActualReward != nil {
		v := *c.ActualReward
		cp.ActualReward = &v
	}
	if c.Penalty != nil {
		v := *c.Penalty
		cp.Penalty = &v
	}
	return &cp
}
