package postgres

import (
	"context"
	"errors"
	"fmt"

	"digital-asset-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BalanceRepo implements ports.BalanceRepository. Amounts live in NUMERIC
// columns and travel as strings so no float ever touches a balance.
type BalanceRepo struct {
	pool Pool
}

// NewBalanceRepo creates a new BalanceRepo.
func NewBalanceRepo(pool Pool) *BalanceRepo {
	return &BalanceRepo{pool: pool}
}

const balanceColumns = `user_id, available, locked, created_at, updated_at`

// GetByUserID fetches a balance without locking.
func (r *BalanceRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.RewardBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM reward_balances WHERE user_id = $1`
	return scanBalance(r.pool.QueryRow(ctx, query, userID))
}

// GetByUserIDForUpdate fetches a balance with a pessimistic row lock.
// This MUST be called within a transaction.
func (r *BalanceRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.RewardBalance, error) {
	query := `SELECT ` + balanceColumns + ` FROM reward_balances WHERE user_id = $1 FOR UPDATE`
	return scanBalance(tx.QueryRow(ctx, query, userID))
}

// Create inserts a new balance row within a transaction.
func (r *BalanceRepo) Create(ctx context.Context, tx pgx.Tx, b *domain.RewardBalance) error {
	query := `INSERT INTO reward_balances (` + balanceColumns + `)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query,
		b.UserID, b.Available.String(), b.Locked.String(), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert balance: %w", err)
	}
	return nil
}

// UpdateBuckets writes both buckets within a transaction.
func (r *BalanceRepo) UpdateBuckets(ctx context.Context, tx pgx.Tx, userID uuid.UUID, available, locked decimal.Decimal) error {
	query := `UPDATE reward_balances SET available = $1, locked = $2, updated_at = NOW() WHERE user_id = $3`

	_, err := tx.Exec(ctx, query, available.String(), locked.String(), userID)
	if err != nil {
		return fmt.Errorf("update balance buckets: %w", err)
	}
	return nil
}

func scanBalance(row pgx.Row) (*domain.RewardBalance, error) {
	b := &domain.RewardBalance{}
	var available, locked string
	err := row.Scan(&b.UserID, &available, &locked, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}

	if b.Available, err = decimal.NewFromString(available); err != nil {
		return nil, fmt.Errorf("parse available: %w", err)
	}
	if b.Locked, err = decimal.NewFromString(locked); err != nil {
		return nil, fmt.Errorf("parse locked: %w", err)
	}
	return b, nil
}
