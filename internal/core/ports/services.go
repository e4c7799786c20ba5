package ports

import (
	"context"
	"time"

	"digital-asset-gateway/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComplianceService decides whether an operation on a digital asset is
// permitted for a given user. All methods are pure: no side effects, no
// errors — every path yields a verdict the caller branches on.
type ComplianceService interface {
	ValidateAgeRequirements(userCtx domain.UserContext, feature domain.Feature) domain.AgeCheck
	ValidateMinorAssetProtection(userCtx domain.UserContext, op domain.AssetOperation) domain.MinorProtectionCheck
	ValidateKYCRequirements(userCtx domain.UserContext, op domain.AssetOperation) domain.KYCCheck
	ValidateAssetOperation(userCtx domain.UserContext, op domain.AssetOperation, region string) domain.ComplianceVerdict
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService mints and validates the user-context tokens the identity
// edge supplies on every call.
type TokenService interface {
	Generate(account *domain.Account) (string, time.Time, error)
	Validate(tokenString string) (*domain.UserContext, error)
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ModerationDecision is the outcome of a content-moderation review.
type ModerationDecision struct {
	IsApproved      bool   `json:"is_approved"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

// ModerationService is the external content-moderation collaborator,
// consulted only when minting an asset with embedded content.
type ModerationService interface {
	Review(ctx context.Context, content string) (*ModerationDecision, error)
}

// --- Service Ports (Business Logic) ---

// RewardService defines the reward-points business logic.
type RewardService interface {
	AddRewardPoints(ctx context.Context, req AddRewardsRequest) (*RewardCreditResult, error)
	UseRewardPoints(ctx context.Context, req UseRewardsRequest) (*RewardDebitResult, error)
	GetRewardBalance(ctx context.Context, userCtx domain.UserContext) (*RewardBalanceResult, error)
}

// AddRewardsRequest holds validated input for crediting reward points.
type AddRewardsRequest struct {
	UserContext domain.UserContext
	Amount      decimal.Decimal
	Reason      string
	Reference   string // idempotency reference, unique per logical credit
	ClientIP    string
}

// UseRewardsRequest holds validated input for redeeming reward points.
type UseRewardsRequest struct {
	UserContext domain.UserContext
	Amount      decimal.Decimal
	Purpose     string
	ClientIP    string
}

// RewardCreditResult reports a credit, including whether the amount was
// diverted into the locked bucket by minor protections.
type RewardCreditResult struct {
	UserID    uuid.UUID       `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
	WasLocked bool            `json:"was_locked"`
	Message   string          `json:"message"`
}

// RewardDebitResult reports a successful redemption.
type RewardDebitResult struct {
	UserID    uuid.UUID       `json:"user_id"`
	Redeemed  decimal.Decimal `json:"redeemed"`
	Available decimal.Decimal `json:"available"`
	Message   string          `json:"message"`
}

// RewardBalanceResult is the read-only balance view.
type RewardBalanceResult struct {
	UserID    uuid.UUID       `json:"user_id"`
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
	Total     decimal.Decimal `json:"total"`
	IsMinor   bool            `json:"is_minor"`
}

// StakingService defines the staking business logic.
type StakingService interface {
	StakeAsset(ctx context.Context, req StakeRequest) (*domain.StakingContract, error)
	UnstakeAssets(ctx context.Context, req UnstakeRequest) (*UnstakeResult, error)
	GetActiveStakingContracts(ctx context.Context, userID uuid.UUID) ([]domain.StakingContract, error)
}

// StakeRequest holds validated input for creating a staking contract.
type StakeRequest struct {
	UserContext  domain.UserContext
	Amount       decimal.Decimal
	DurationDays int
	AssetType    domain.AssetType
	Reference    string // idempotency reference
	ClientIP     string
}

// UnstakeRequest holds validated input for completing a staking contract.
type UnstakeRequest struct {
	UserContext domain.UserContext
	StakingID   uuid.UUID
	ClientIP    string
}

// UnstakeResult reports the payout of a completed contract.
type UnstakeResult struct {
	Contract       *domain.StakingContract `json:"contract"`
	ReturnedAmount decimal.Decimal         `json:"returned_amount"`
	ActualReward   decimal.Decimal         `json:"actual_reward"`
	Penalty        decimal.Decimal         `json:"penalty"`
	EarlyUnstake   bool                    `json:"early_unstake"`
	NewBalance     decimal.Decimal         `json:"new_balance"`
	Message        string                  `json:"message"`
}

// AssetService defines minting, transfer and the locking subsystem.
type AssetService interface {
	MintAsset(ctx context.Context, req MintRequest) (*domain.Asset, error)
	CreateAsset(ctx context.Context, req CreateAssetRequest) (*domain.Asset, error)
	GetAsset(ctx context.Context, assetID uuid.UUID, userCtx domain.UserContext) (*domain.Asset, error)
	TransferAsset(ctx context.Context, req TransferRequest) (*domain.Asset, error)
	LockAsset(ctx context.Context, req LockRequest) (*domain.Asset, error)
	UnlockAsset(ctx context.Context, req UnlockRequest) (*domain.Asset, error)
	CompoundAsset(ctx context.Context, req CompoundRequest) (*domain.Asset, error)
	// ProjectLockedValue is a pure projection of a locked balance's growth
	// until the holder reaches the age of majority.
	ProjectLockedValue(req ProjectionRequest) ProjectionResult
}

// MintRequest holds validated input for minting an asset.
type MintRequest struct {
	UserContext domain.UserContext
	AssetType   domain.AssetType
	Value       decimal.Decimal
	Metadata    map[string]string
	ClientIP    string
}

// CreateAssetRequest holds validated input for direct asset creation.
type CreateAssetRequest struct {
	UserContext  domain.UserContext
	AssetType    domain.AssetType
	Value        decimal.Decimal
	Restrictions *domain.Restrictions
	ExpiresAt    *time.Time
}

// TransferRequest carries both parties' contexts: the sender is gated on
// transfer compliance, the receiver on receive compliance.
type TransferRequest struct {
	AssetID  uuid.UUID
	From     domain.UserContext
	To       domain.UserContext
	ClientIP string
}

// LockRequest holds validated input for locking an asset.
// Zero DurationDays selects the default lock window.
type LockRequest struct {
	UserContext  domain.UserContext
	AssetID      uuid.UUID
	DurationDays int
	Reason       domain.LockReason // empty selects AGE_RESTRICTION
}

// VerificationData is the externally supplied proof of age/KYC required
// to unlock. This core never verifies documents; it only requires the
// caller to assert that verification happened.
type VerificationData struct {
	Method      string    `json:"method"`
	DocumentRef string    `json:"document_ref"`
	VerifiedAt  time.Time `json:"verified_at"`
}

// UnlockRequest holds validated input for unlocking an asset.
type UnlockRequest struct {
	UserContext      domain.UserContext
	AssetID          uuid.UUID
	VerificationData *VerificationData
}

// CompoundRequest applies a one-shot growth multiplication to an asset.
type CompoundRequest struct {
	UserContext domain.UserContext
	AssetID     uuid.UUID
	Rate        decimal.Decimal
}

// ProjectionRequest asks how a locked value grows until unlock age.
type ProjectionRequest struct {
	CurrentValue decimal.Decimal
	UserAge      int
	AnnualRate   decimal.Decimal
}

// ProjectionResult holds the compounded projection.
type ProjectionResult struct {
	YearsUntilUnlock int             `json:"years_until_unlock"`
	ProjectedValue   decimal.Decimal `json:"projected_value"`
}

// AuthService defines the identity edge: account registration and login.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// RegisterRequest holds input for account registration.
type RegisterRequest struct {
	Username    string
	Password    string
	DateOfBirth time.Time
	Region      string
}

// RegisterResponse holds the registration result.
type RegisterResponse struct {
	UserID    uuid.UUID
	Username  string
	KYCStatus domain.KYCStatus
}

// AuditService records audit entries (fire-and-forget).
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
