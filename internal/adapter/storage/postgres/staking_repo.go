package postgres

import (
	"context"
	"errors"
	"fmt"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// StakingRepo implements ports.StakingRepository.
type StakingRepo struct {
	pool Pool
}

// NewStakingRepo creates a new StakingRepo.
func NewStakingRepo(pool Pool) *StakingRepo {
	return &StakingRepo{pool: pool}
}

const stakingColumns = `staking_id, user_id, asset_type, amount, duration_days, apy, estimated_reward, start_date, maturity_date, status, actual_reward, penalty, created_at, updated_at`

// Create inserts a new staking contract within a transaction.
func (r *StakingRepo) Create(ctx context.Context, tx pgx.Tx, c *domain.StakingContract) error {
	query := `INSERT INTO staking_contracts (` + stakingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := tx.Exec(ctx, query,
		c.StakingID, c.UserID, string(c.AssetType), c.Amount.String(),
		c.DurationDays, c.APY.String(), c.EstimatedReward.String(),
		c.StartDate, c.MaturityDate, string(c.Status),
		nullDecimal(c.ActualReward), nullDecimal(c.Penalty),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert staking contract: %w", err)
	}
	return nil
}

// GetByID fetches a staking contract by its ID.
func (r *StakingRepo) GetByID(ctx context.Context, stakingID uuid.UUID) (*domain.StakingContract, error) {
	query := `SELECT ` + stakingColumns + ` FROM staking_contracts WHERE staking_id = $1`
	return scanContract(r.pool.QueryRow(ctx, query, stakingID))
}

// ListActiveByUser fetches a user's active contracts, oldest first.
func (r *StakingRepo) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.StakingContract, error) {
	query := `SELECT ` + stakingColumns + ` FROM staking_contracts
		WHERE user_id = $1 AND status = $2 ORDER BY start_date`

	rows, err := r.pool.Query(ctx, query, userID, string(domain.StakingStatusActive))
	if err != nil {
		return nil, fmt.Errorf("list staking contracts: %w", err)
	}
	defer rows.Close()

	var out []domain.StakingContract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Complete transitions a contract active->completed exactly once. A
// contract that already left the active state matches zero rows.
func (r *StakingRepo) Complete(ctx context.Context, tx pgx.Tx, stakingID uuid.UUID, actualReward, penalty decimal.Decimal) error {
	query := `UPDATE staking_contracts
		SET status = $1, actual_reward = $2, penalty = $3, updated_at = NOW()
		WHERE staking_id = $4 AND status = $5`

	tag, err := tx.Exec(ctx, query,
		string(domain.StakingStatusCompleted), actualReward.String(), penalty.String(),
		stakingID, string(domain.StakingStatusActive),
	)
	if err != nil {
		return fmt.Errorf("complete staking contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNoRowsAffected
	}
	return nil
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanContract(row pgx.Row) (*domain.StakingContract, error) {
	c := &domain.StakingContract{}
	var assetType, status, amount, apy, estimated string
	var actualReward, penalty *string

	err := row.Scan(
		&c.StakingID, &c.UserID, &assetType, &amount, &c.DurationDays,
		&apy, &estimated, &c.StartDate, &c.MaturityDate, &status,
		&actualReward, &penalty, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staking contract: %w", err)
	}

	c.AssetType = domain.AssetType(assetType)
	c.Status = domain.StakingStatus(status)
	if c.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse staking amount: %w", err)
	}
	if c.APY, err = decimal.NewFromString(apy); err != nil {
		return nil, fmt.Errorf("parse staking apy: %w", err)
	}
	if c.EstimatedReward, err = decimal.NewFromString(estimated); err != nil {
		return nil, fmt.Errorf("parse estimated reward: %w", err)
	}
	if actualReward != nil {
		d, err := decimal.NewFromString(*actualReward)
		if err != nil {
			return nil, fmt.Errorf("parse actual reward: %w", err)
		}
		c.ActualReward = &d
	}
	if penalty != nil {
		d, err := decimal.NewFromString(*penalty)
		if err != nil {
			return nil, fmt.Errorf("parse penalty: %w", err)
		}
		c.Penalty = &d
	}
	return c, nil
}
