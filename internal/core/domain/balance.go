package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RewardBalance holds a user's reward points split into a liquid and a
// locked bucket. Credits always land first; minor-protection locking only
// changes which bucket the amount sits in.
type RewardBalance struct {
	UserID    uuid.UUID       `json:"user_id"`
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewRewardBalance returns a zeroed balance row for a user.
func NewRewardBalance(userID uuid.UUID, now time.Time) *RewardBalance {
	return &RewardBalance{
		UserID:    userID,
		Available: decimal.Zero,
		Locked:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Total returns the combined available + locked balance.
func (b *RewardBalance) Total() decimal.Decimal {
	return b.Available.Add(b.Locked)
}
