package ports

import (
	"context"
	"errors"

	"digital-asset-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrNoRowsAffected signals a compare-and-swap update that matched zero
// rows: the record's state moved on since it was read. Callers translate
// this into the operation-specific conflict error.
var ErrNoRowsAffected = errors.New("no rows affected")

// AccountRepository defines persistence operations for platform accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

// BalanceRepository defines persistence operations for reward balances.
// Methods accepting pgx.Tx run inside transaction blocks so the balance
// row stays locked for the duration of a mutation.
type BalanceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.RewardBalance, error)
	GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.RewardBalance, error)
	Create(ctx context.Context, tx pgx.Tx, balance *domain.RewardBalance) error
	UpdateBuckets(ctx context.Context, tx pgx.Tx, userID uuid.UUID, available, locked decimal.Decimal) error
}

// AssetRepository defines persistence operations for digital assets.
// Status and ownership changes are compare-and-swap: they only apply when
// the stored record still matches the expected prior state, so a lost race
// surfaces as zero rows instead of a double-applied mutation.
type AssetRepository interface {
	Create(ctx context.Context, tx pgx.Tx, asset *domain.Asset) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Asset, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Asset, error)
	// UpdateStatus transitions status from->to; lockInfo is set on lock and
	// cleared on unlock. Returns domain mismatch as zero-row error.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, from, to domain.AssetStatus, lockInfo *domain.LockInfo) error
	// UpdateOwner re-owns the asset iff it is still owned by fromOwner.
	UpdateOwner(ctx context.Context, tx pgx.Tx, id, fromOwner, toOwner uuid.UUID) error
	UpdateValue(ctx context.Context, tx pgx.Tx, id uuid.UUID, value decimal.Decimal) error
	AppendEvent(ctx context.Context, tx pgx.Tx, event *domain.AssetEvent) error
}

// StakingRepository defines persistence operations for staking contracts.
type StakingRepository interface {
	Create(ctx context.Context, tx pgx.Tx, contract *domain.StakingContract) error
	GetByID(ctx context.Context, stakingID uuid.UUID) (*domain.StakingContract, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.StakingContract, error)
	// Complete transitions the contract active->completed exactly once,
	// recording the payout. A contract that is no longer active yields an
	// ErrNotActive-style zero-row error so double unstakes cannot double-pay.
	Complete(ctx context.Context, tx pgx.Tx, stakingID uuid.UUID, actualReward, penalty decimal.Decimal) error
}

// IdempotencyRepository defines persistence for idempotency logs (DB backup).
type IdempotencyRepository interface {
	Create(ctx context.Context, tx pgx.Tx, log *domain.IdempotencyLog) error
	Get(ctx context.Context, key string) (*domain.IdempotencyLog, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
