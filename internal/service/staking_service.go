package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/internal/metrics"
	"digital-asset-gateway/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const daysPerYear = 365

// Base APY per asset type. Types outside the table earn the fallback rate.
var (
	baseAPYRates = map[domain.AssetType]decimal.Decimal{
		domain.AssetTypeRewardPoints: decimal.NewFromFloat(0.03),
		domain.AssetTypeToken:        decimal.NewFromFloat(0.05),
		domain.AssetTypeNFT:          decimal.NewFromFloat(0.02),
	}
	fallbackAPYRate = decimal.NewFromFloat(0.01)

	earlyUnstakePenaltyRate = decimal.NewFromFloat(0.05)
	earlyUnstakeRewardRate  = decimal.NewFromFloat(0.5)
)

// durationMultiplier rewards longer commitments with a higher APY.
func durationMultiplier(durationDays int) decimal.Decimal {
	switch {
	case durationDays >= 365:
		return decimal.NewFromFloat(1.5)
	case durationDays >= 180:
		return decimal.NewFromFloat(1.25)
	case durationDays >= 90:
		return decimal.NewFromFloat(1.10)
	default:
		return decimal.NewFromInt(1)
	}
}

// CalculateStakingAPY returns the effective annual rate for an asset type
// and duration.
func CalculateStakingAPY(assetType domain.AssetType, durationDays int) decimal.Decimal {
	base, ok := baseAPYRates[assetType]
	if !ok {
		base = fallbackAPYRate
	}
	return base.Mul(durationMultiplier(durationDays))
}

// StakingServiceImpl implements ports.StakingService.
type StakingServiceImpl struct {
	stakingRepo ports.StakingRepository
	balanceRepo ports.BalanceRepository
	idempRepo   ports.IdempotencyRepository
	idempCache  ports.IdempotencyCache
	compliance  ports.ComplianceService
	transactor  ports.DBTransactor
	auditSvc    ports.AuditService
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewStakingService creates a new StakingServiceImpl.
func NewStakingService(
	stakingRepo ports.StakingRepository,
	balanceRepo ports.BalanceRepository,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	compliance ports.ComplianceService,
	transactor ports.DBTransactor,
	auditSvc ports.AuditService,
	m *metrics.Metrics,
	log zerolog.Logger,
) *StakingServiceImpl {
	return &StakingServiceImpl{
		stakingRepo: stakingRepo,
		balanceRepo: balanceRepo,
		idempRepo:   idempRepo,
		idempCache:  idempCache,
		compliance:  compliance,
		transactor:  transactor,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
	}
}

// StakeAsset creates an active staking contract, debiting the liquid
// reward balance under a row lock. Minors may stake; their contract is
// flagged by the compliance verdict and the payout will re-lock.
func (s *StakingServiceImpl) StakeAsset(ctx context.Context, req ports.StakeRequest) (*domain.StakingContract, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.DurationDays <= 0 {
		return nil, apperror.ErrInvalidDuration()
	}

	op := domain.AssetOperation{
		Kind:      domain.OpStake,
		Amount:    req.Amount,
		AssetType: req.AssetType,
	}
	verdict := s.compliance.ValidateAssetOperation(req.UserContext, op, "")
	if !verdict.IsCompliant {
		s.auditSvc.Log(ctx, &domain.AuditLog{
			UserID:       &req.UserContext.UserID,
			Action:       domain.AuditActionComplianceDenied,
			ResourceType: "staking_contract",
			Details:      fmt.Sprintf("stake denied: %s", verdict.Reason),
			IPAddress:    req.ClientIP,
		})
		return nil, apperror.ErrComplianceDenied(verdict.Reason)
	}

	idempKey := domain.BuildIdempotencyKey(req.UserContext.UserID, domain.OpStake, req.Reference)

	// Layer 1: Redis idempotency check
	cached, err := s.idempCache.Get(ctx, idempKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, falling through to DB")
	}
	if cached != nil {
		return s.unmarshalCachedContract(cached)
	}

	// Layer 2: DB idempotency check
	idempLog, err := s.idempRepo.Get(ctx, idempKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if idempLog != nil {
		return s.unmarshalCachedContract(idempLog.ResponseJSON)
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get balance
	balance, err := s.balanceRepo.GetByUserIDForUpdate(ctx, dbTx, req.UserContext.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}
	if balance == nil || balance.Available.LessThan(req.Amount) {
		return nil, apperror.ErrInsufficientBalance(string(req.AssetType))
	}

	// Debit the liquid bucket for the staked principal
	balance.Available = balance.Available.Sub(req.Amount)
	if err := s.balanceRepo.UpdateBuckets(ctx, dbTx, balance.UserID, balance.Available, balance.Locked); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	now := time.Now().UTC()
	apy := CalculateStakingAPY(req.AssetType, req.DurationDays)
	estimatedReward := req.Amount.
		Mul(apy).
		Mul(decimal.NewFromInt(int64(req.DurationDays))).
		Div(decimal.NewFromInt(daysPerYear))

	contract := &domain.StakingContract{
		StakingID:       uuid.New(),
		UserID:          req.UserContext.UserID,
		AssetType:       req.AssetType,
		Amount:          req.Amount,
		DurationDays:    req.DurationDays,
		APY:             apy,
		EstimatedReward: estimatedReward,
		StartDate:       now,
		MaturityDate:    now.AddDate(0, 0, req.DurationDays),
		Status:          domain.StakingStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.stakingRepo.Create(ctx, dbTx, contract); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create contract: %w", err))
	}

	// Persist: idempotency log
	respJSON, err := json.Marshal(contract)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal response: %w", err))
	}
	idempLogEntry := &domain.IdempotencyLog{
		Key:          idempKey,
		ResourceID:   contract.StakingID,
		ResponseJSON: respJSON,
		CreatedAt:    now,
	}
	if err := s.idempRepo.Create(ctx, dbTx, idempLogEntry); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save idempotency log: %w", err))
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	// Post-process: cache in Redis (best-effort)
	if err := s.idempCache.Set(ctx, idempKey, respJSON, idempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("failed to cache idempotency in redis")
	}

	s.metrics.IncrementStakingEvent("created")
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &contract.UserID,
		Action:       domain.AuditActionStake,
		ResourceType: "staking_contract",
		ResourceID:   contract.StakingID.String(),
		Details:      fmt.Sprintf("staked %s %s for %d days at %s APY", contract.Amount, contract.AssetType, contract.DurationDays, contract.APY),
		IPAddress:    req.ClientIP,
	})

	s.log.Info().
		Str("staking_id", contract.StakingID.String()).
		Str("user_id", contract.UserID.String()).
		Str("amount", contract.Amount.String()).
		Int("duration_days", contract.DurationDays).
		Str("apy", contract.APY.String()).
		Msg("staking contract created")

	return contract, nil
}

// UnstakeAssets completes a contract and credits the payout back to the
// liquid balance. The active->completed transition is compare-and-swap:
// a concurrent double unstake loses the race and fails instead of paying
// out twice.
func (s *StakingServiceImpl) UnstakeAssets(ctx context.Context, req ports.UnstakeRequest) (*ports.UnstakeResult, error) {
	contract, err := s.stakingRepo.GetByID(ctx, req.StakingID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get contract: %w", err))
	}
	if contract == nil {
		return nil, apperror.ErrContractNotFound()
	}
	if contract.UserID != req.UserContext.UserID {
		return nil, apperror.ErrContractNotOwned()
	}
	if contract.Status != domain.StakingStatusActive {
		return nil, apperror.ErrContractNotActive()
	}

	now := time.Now().UTC()
	early := !contract.IsMature(now)

	actualReward := contract.EstimatedReward
	penalty := decimal.Zero
	if early {
		penalty = earlyUnstakePenaltyRate.Mul(contract.Amount)
		actualReward = contract.EstimatedReward.
			Mul(contract.CompletionRatio(now)).
			Mul(earlyUnstakeRewardRate)
	}
	returned := contract.Amount.Sub(penalty).Add(actualReward)

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// CAS: active -> completed, exactly once
	if err := s.stakingRepo.Complete(ctx, dbTx, contract.StakingID, actualReward, penalty); err != nil {
		if errors.Is(err, ports.ErrNoRowsAffected) {
			return nil, apperror.ErrContractNotActive()
		}
		return nil, apperror.InternalError(fmt.Errorf("complete contract: %w", err))
	}

	// Lock & credit balance
	balance, err := s.balanceRepo.GetByUserIDForUpdate(ctx, dbTx, contract.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}
	if balance == nil {
		balance = domain.NewRewardBalance(contract.UserID, now)
		if err := s.balanceRepo.Create(ctx, dbTx, balance); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create balance: %w", err))
		}
	}

	// Minor payouts land in the locked bucket
	if req.UserContext.IsMinor() {
		balance.Locked = balance.Locked.Add(returned)
	} else {
		balance.Available = balance.Available.Add(returned)
	}
	if err := s.balanceRepo.UpdateBuckets(ctx, dbTx, balance.UserID, balance.Available, balance.Locked); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	contract.Status = domain.StakingStatusCompleted
	contract.ActualReward = &actualReward
	contract.Penalty = &penalty
	contract.UpdatedAt = now

	event := "completed"
	message := "Staking contract completed at maturity"
	if early {
		event = "early_unstaked"
		message = "Staking contract completed early with penalty"
	}
	s.metrics.IncrementStakingEvent(event)
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &contract.UserID,
		Action:       domain.AuditActionUnstake,
		ResourceType: "staking_contract",
		ResourceID:   contract.StakingID.String(),
		Details:      fmt.Sprintf("unstaked %s (early=%t, penalty=%s, reward=%s)", contract.Amount, early, penalty, actualReward),
		IPAddress:    req.ClientIP,
	})

	s.log.Info().
		Str("staking_id", contract.StakingID.String()).
		Str("user_id", contract.UserID.String()).
		Bool("early", early).
		Str("returned", returned.String()).
		Msg("staking contract unstaked")

	return &ports.UnstakeResult{
		Contract:       contract,
		ReturnedAmount: returned,
		ActualReward:   actualReward,
		Penalty:        penalty,
		EarlyUnstake:   early,
		NewBalance:     balance.Available,
		Message:        message,
	}, nil
}

// GetActiveStakingContracts lists the caller's active contracts.
func (s *StakingServiceImpl) GetActiveStakingContracts(ctx context.Context, userID uuid.UUID) ([]domain.StakingContract, error) {
	contracts, err := s.stakingRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list contracts: %w", err))
	}
	return contracts, nil
}

func (s *StakingServiceImpl) unmarshalCachedContract(data []byte) (*domain.StakingContract, error) {
	var contract domain.StakingContract
	if err := json.Unmarshal(data, &contract); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached contract: %w", err))
	}
	return &contract, nil
}
