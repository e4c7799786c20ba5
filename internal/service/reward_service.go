package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/internal/metrics"
	"digital-asset-gateway/pkg/apperror"

	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// RewardServiceImpl implements ports.RewardService.
type RewardServiceImpl struct {
	balanceRepo ports.BalanceRepository
	idempRepo   ports.IdempotencyRepository
	idempCache  ports.IdempotencyCache
	compliance  ports.ComplianceService
	transactor  ports.DBTransactor
	auditSvc    ports.AuditService
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewRewardService creates a new RewardServiceImpl.
func NewRewardService(
	balanceRepo ports.BalanceRepository,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	compliance ports.ComplianceService,
	transactor ports.DBTransactor,
	auditSvc ports.AuditService,
	m *metrics.Metrics,
	log zerolog.Logger,
) *RewardServiceImpl {
	return &RewardServiceImpl{
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

// AddRewardPoints credits reward points with pessimistic locking. Credits
// for minors land in the locked bucket instead of the available one.
func (s *RewardServiceImpl) AddRewardPoints(ctx context.Context, req ports.AddRewardsRequest) (*ports.RewardCreditResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	op := domain.AssetOperation{
		Kind:      domain.OpAddRewards,
		Amount:    req.Amount,
		AssetType: domain.AssetTypeRewardPoints,
	}
	verdict := s.compliance.ValidateAssetOperation(req.UserContext, op, "")
	if !verdict.IsCompliant {
		s.auditDenied(ctx, req.UserContext, domain.AuditActionRewardCredit, verdict.Reason, req.ClientIP)
		return nil, apperror.ErrComplianceDenied(verdict.Reason)
	}

	idempKey := domain.BuildIdempotencyKey(req.UserContext.UserID, domain.OpAddRewards, req.Reference)

	// Layer 1: Redis idempotency check
	cached, err := s.idempCache.Get(ctx, idempKey)
	if err != nil {
		s.log.Warn().Err(err).Str("key", idempKey).Msg("redis idempotency check failed, falling through to DB")
	}
	if cached != nil {
		return s.unmarshalCachedCredit(cached)
	}

	// Layer 2: DB idempotency check
	idempLog, err := s.idempRepo.Get(ctx, idempKey)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if idempLog != nil {
		return s.unmarshalCachedCredit(idempLog.ResponseJSON)
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	now := time.Now().UTC()

	// Lock & get balance, creating the row on first credit
	balance, err := s.balanceRepo.GetByUserIDForUpdate(ctx, dbTx, req.UserContext.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock balance: %w", err))
	}
	if balance == nil {
		balance = domain.NewRewardBalance(req.UserContext.UserID, now)
		if err := s.balanceRepo.Create(ctx, dbTx, balance); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("create balance: %w", err))
		}
	}

	wasLocked := verdict.ShouldLockAssets
	if wasLocked {
		balance.Locked = balance.Locked.Add(req.Amount)
	} else {
		balance.Available = balance.Available.Add(req.Amount)
	}

	if err := s.balanceRepo.UpdateBuckets(ctx, dbTx, balance.UserID, balance.Available, balance.Locked); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	result := &ports.RewardCreditResult{
		UserID:    balance.UserID,
		Amount:    req.Amount,
		Available: balance.Available,
		Locked:    balance.Locked,
		WasLocked: wasLocked,
		Message:   "Reward points added",
	}
	if wasLocked {
		result.Message = "Reward points added and locked for minor protection"
	}

	// Persist: idempotency log
	respJSON, err := json.Marshal(result)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("marshal response: %w", err))
	}
	idempLogEntry := &domain.IdempotencyLog{
		Key:          idempKey,
		ResourceID:   balance.UserID,
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

	s.metrics.IncrementRewardMovement("credit")
	if wasLocked {
		s.metrics.IncrementAssetLocked()
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &req.UserContext.UserID,
		Action:       domain.AuditActionRewardCredit,
		ResourceType: "reward_balance",
		ResourceID:   balance.UserID.String(),
		Details:      fmt.Sprintf("credited %s points (locked=%t)", req.Amount, wasLocked),
		IPAddress:    req.ClientIP,
	})

	s.log.Info().
		Str("user_id", balance.UserID.String()).
		Str("amount", req.Amount.String()).
		Bool("locked", wasLocked).
		Msg("reward points credited")

	return result, nil
}

// UseRewardPoints debits the available bucket. Minors cannot redeem:
// their balance sits in the locked bucket until the age of majority.
func (s *RewardServiceImpl) UseRewardPoints(ctx context.Context, req ports.UseRewardsRequest) (*ports.RewardDebitResult, error) {
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	op := domain.AssetOperation{
		Kind:      domain.OpUseRewards,
		Amount:    req.Amount,
		AssetType: domain.AssetTypeRewardPoints,
	}
	verdict := s.compliance.ValidateAssetOperation(req.UserContext, op, "")
	if !verdict.IsCompliant {
		s.auditDenied(ctx, req.UserContext, domain.AuditActionRewardDebit, verdict.Reason, req.ClientIP)
		return nil, apperror.ErrComplianceDenied(verdict.Reason)
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
		available := "0"
		if balance != nil {
			available = balance.Available.String()
		}
		return nil, apperror.ErrInsufficientPoints(available, req.Amount.String())
	}

	balance.Available = balance.Available.Sub(req.Amount)
	if err := s.balanceRepo.UpdateBuckets(ctx, dbTx, balance.UserID, balance.Available, balance.Locked); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}

	// Commit
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.IncrementRewardMovement("debit")
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &req.UserContext.UserID,
		Action:       domain.AuditActionRewardDebit,
		ResourceType: "reward_balance",
		ResourceID:   balance.UserID.String(),
		Details:      fmt.Sprintf("redeemed %s points for %s", req.Amount, req.Purpose),
		IPAddress:    req.ClientIP,
	})

	s.log.Info().
		Str("user_id", balance.UserID.String()).
		Str("amount", req.Amount.String()).
		Msg("reward points redeemed")

	return &ports.RewardDebitResult{
		UserID:    balance.UserID,
		Redeemed:  req.Amount,
		Available: balance.Available,
		Message:   "Reward points redeemed",
	}, nil
}

// GetRewardBalance returns the balance view. Users without a balance row
// see zeros rather than an error.
func (s *RewardServiceImpl) GetRewardBalance(ctx context.Context, userCtx domain.UserContext) (*ports.RewardBalanceResult, error) {
	balance, err := s.balanceRepo.GetByUserID(ctx, userCtx.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get balance: %w", err))
	}
	if balance == nil {
		balance = domain.NewRewardBalance(userCtx.UserID, time.Now().UTC())
	}

	return &ports.RewardBalanceResult{
		UserID:    balance.UserID,
		Available: balance.Available,
		Locked:    balance.Locked,
		Total:     balance.Total(),
		IsMinor:   userCtx.IsMinor(),
	}, nil
}

func (s *RewardServiceImpl) auditDenied(ctx context.Context, userCtx domain.UserContext, action domain.AuditAction, reason, clientIP string) {
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &userCtx.UserID,
		Action:       domain.AuditActionComplianceDenied,
		ResourceType: "compliance",
		Details:      fmt.Sprintf("%s denied: %s", action, reason),
		IPAddress:    clientIP,
	})
}

func (s *RewardServiceImpl) unmarshalCachedCredit(data []byte) (*ports.RewardCreditResult, error) {
	var result ports.RewardCreditResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached credit: %w", err))
	}
	return &result, nil
}
