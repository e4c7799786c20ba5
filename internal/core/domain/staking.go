package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StakingStatus represents the lifecycle state of a staking contract.
type StakingStatus string

const (
	StakingStatusActive    StakingStatus = "active"
	StakingStatusCompleted StakingStatus = "completed"
)

// StakingContract locks an amount of an asset type for a fixed duration
// in exchange for a yield. A contract is created only by a successful
// stake operation and transitions to completed exactly once, on unstake.
type StakingContract struct {
	StakingID       uuid.UUID        `json:"staking_id"`
	UserID          uuid.UUID        `json:"user_id"`
	AssetType       AssetType        `json:"asset_type"`
	Amount          decimal.Decimal  `json:"amount"`
	DurationDays    int              `json:"duration_days"`
	APY             decimal.Decimal  `json:"apy"`
	EstimatedReward decimal.Decimal  `json:"estimated_reward"`
	StartDate       time.Time        `json:"start_date"`
	MaturityDate    time.Time        `json:"maturity_date"`
	Status          StakingStatus    `json:"status"`
	ActualReward    *decimal.Decimal `json:"actual_reward,omitempty"`
	Penalty         *decimal.Decimal `json:"penalty,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// IsMature reports whether the contract reached its maturity date.
func (c *StakingContract) IsMature(now time.Time) bool {
	return !now.Before(c.MaturityDate)
}

// CompletionRatio returns elapsed/total duration, clamped to [0, 1].
func (c *StakingContract) CompletionRatio(now time.Time) decimal.Decimal {
	total := c.MaturityDate.Sub(c.StartDate)
	if total <= 0 {
		return decimal.NewFromInt(1)
	}
	elapsed := now.Sub(c.StartDate)
	if elapsed <= 0 {
		return decimal.Zero
	}
	if elapsed >= total {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(elapsed.Seconds()).Div(decimal.NewFromFloat(total.Seconds()))
}
