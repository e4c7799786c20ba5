package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType represents the kind of digital asset.
type AssetType string

const (
	AssetTypeRewardPoints AssetType = "REWARD_POINTS"
	AssetTypeToken        AssetType = "TOKEN"
	AssetTypeNFT          AssetType = "NFT"
	AssetTypeBadge        AssetType = "BADGE"
	AssetTypeCourseCredit AssetType = "COURSE_CREDIT"
	AssetTypeDiscount     AssetType = "DISCOUNT"
)

// AssetStatus represents the lifecycle state of an asset.
type AssetStatus string

const (
	AssetStatusActive      AssetStatus = "ACTIVE"
	AssetStatusLocked      AssetStatus = "LOCKED"
	AssetStatusStaked      AssetStatus = "STAKED"
	AssetStatusExpired     AssetStatus = "EXPIRED"
	AssetStatusTransferred AssetStatus = "TRANSFERRED"
)

// LockReason explains why an asset was placed under a lock.
type LockReason string

const (
	LockReasonAgeRestriction LockReason = "AGE_RESTRICTION"
	LockReasonUserRequested  LockReason = "USER_REQUESTED"
	LockReasonAdminAction    LockReason = "ADMIN_ACTION"
	LockReasonSecurity       LockReason = "SECURITY"
	LockReasonCompliance     LockReason = "COMPLIANCE"
)

// LockInfo describes an active lock on an asset.
// Present if and only if the asset status is LOCKED.
type LockInfo struct {
	LockID      uuid.UUID  `json:"lock_id"`
	Reason      LockReason `json:"reason"`
	LockedUntil time.Time  `json:"locked_until"`
}

// Restrictions constrain who may hold or move an asset.
type Restrictions struct {
	MinAge       int  `json:"min_age"`
	RequiresKYC  bool `json:"requires_kyc"`
	Transferable bool `json:"transferable"`
	Stakeable    bool `json:"stakeable"`
}

// AssetEventType classifies an entry in an asset's transaction history.
type AssetEventType string

const (
	AssetEventMint     AssetEventType = "mint"
	AssetEventTransfer AssetEventType = "transfer"
	AssetEventLock     AssetEventType = "lock"
	AssetEventUnlock   AssetEventType = "unlock"
	AssetEventCompound AssetEventType = "compound"
)

// AssetEvent is an append-only history entry. "system" is used as the
// source of mint events.
type AssetEvent struct {
	ID        uuid.UUID      `json:"id"`
	AssetID   uuid.UUID      `json:"asset_id"`
	Type      AssetEventType `json:"type"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	CreatedAt time.Time      `json:"created_at"`
}

// Asset is a single mutable digital-asset record. Transfers re-own the
// record rather than copying it; nothing is ever hard-deleted.
type Asset struct {
	ID           uuid.UUID         `json:"id"`
	Type         AssetType         `json:"type"`
	Value        decimal.Decimal   `json:"value"`
	OwnerID      uuid.UUID         `json:"owner_id"`
	CreatorID    uuid.UUID         `json:"creator_id"`
	Status       AssetStatus       `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LockInfo     *LockInfo         `json:"lock_info,omitempty"`
	Restrictions *Restrictions     `json:"restrictions,omitempty"`
	ExpiresAt    *time.Time        `json:"expires_at,omitempty"`
	History      []AssetEvent      `json:"history,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// IsLocked reports whether the asset currently carries a lock.
func (a *Asset) IsLocked() bool {
	return a.Status == AssetStatusLocked && a.LockInfo != nil
}

// IsExpired reports whether the asset's expiry has elapsed at the given
// instant. Expiry is evaluated lazily at read time; no sweep job exists.
func (a *Asset) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && now.After(*a.ExpiresAt)
}

// EffectiveStatus returns the status a reader should observe, surfacing
// EXPIRED for assets whose expiry elapsed without a status write.
func (a *Asset) EffectiveStatus(now time.Time) AssetStatus {
	if a.Status == AssetStatusActive && a.IsExpired(now) {
		return AssetStatusExpired
	}
	return a.Status
}

// IsTransferable reports whether the asset may change owners in its
// current state.
func (a *Asset) IsTransferable() bool {
	if a.Status != AssetStatusActive {
		return false
	}
	if a.Restrictions != nil && !a.Restrictions.Transferable {
		return false
	}
	return true
}
