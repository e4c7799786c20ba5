package service

import (
	"context"
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

const (
	defaultLockDays       = 30
	mintEventSource       = "system"
	compoundingPerYear    = 12
	metadataContentKey    = "content"
	minorLockYearsCeiling = domain.AdultAge
)

// AssetServiceImpl implements ports.AssetService: minting, transfer and
// the locking subsystem.
type AssetServiceImpl struct {
	assetRepo  ports.AssetRepository
	compliance ports.ComplianceService
	moderation ports.ModerationService
	transactor ports.DBTransactor
	auditSvc   ports.AuditService
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewAssetService creates a new AssetServiceImpl.
func NewAssetService(
	assetRepo ports.AssetRepository,
	compliance ports.ComplianceService,
	moderation ports.ModerationService,
	transactor ports.DBTransactor,
	auditSvc ports.AuditService,
	m *metrics.Metrics,
	log zerolog.Logger,
) *AssetServiceImpl {
	return &AssetServiceImpl{
		assetRepo:  assetRepo,
		compliance: compliance,
		moderation: moderation,
		transactor: transactor,
		auditSvc:   auditSvc,
		metrics:    m,
		log:        log,
	}
}

// MintAsset creates a new asset owned and created by the caller. Embedded
// content in the metadata must pass moderation review first; a minor's
// mint succeeds but the asset starts out locked.
func (s *AssetServiceImpl) MintAsset(ctx context.Context, req ports.MintRequest) (*domain.Asset, error) {
	if req.Value.IsNegative() {
		return nil, apperror.ErrInvalidAmount()
	}

	op := domain.AssetOperation{
		Kind:      domain.OpMint,
		Amount:    req.Value,
		AssetType: req.AssetType,
	}
	verdict := s.compliance.ValidateAssetOperation(req.UserContext, op, "")
	if !verdict.IsCompliant {
		s.auditDenied(ctx, req.UserContext, "mint", verdict.Reason, req.ClientIP)
		return nil, apperror.ErrComplianceDenied(verdict.Reason)
	}

	// Content moderation gate, fail-closed: an unreachable moderation
	// collaborator blocks the mint rather than waving the content through.
	if content := req.Metadata[metadataContentKey]; content != "" {
		if s.moderation == nil {
			return nil, apperror.ErrModerationUnavailable(errors.New("moderation is not configured"))
		}
		decision, err := s.moderation.Review(ctx, content)
		if err != nil {
			s.log.Error().Err(err).Msg("moderation review failed")
			return nil, apperror.ErrModerationUnavailable(err)
		}
		if !decision.IsApproved {
			return nil, apperror.ErrContentRejected(decision.RejectionReason)
		}
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		ID:        uuid.New(),
		Type:      req.AssetType,
		Value:     req.Value,
		OwnerID:   req.UserContext.UserID,
		CreatorID: req.UserContext.UserID,
		Status:    domain.AssetStatusActive,
		Metadata:  req.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if verdict.ShouldLockAssets {
		asset.Status = domain.AssetStatusLocked
		asset.LockInfo = minorLockInfo(req.UserContext.Age, now)
	}

	// Begin database transaction
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.assetRepo.Create(ctx, dbTx, asset); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create asset: %w", err))
	}

	mintEvent := &domain.AssetEvent{
		ID:        uuid.New(),
		AssetID:   asset.ID,
		Type:      domain.AssetEventMint,
		From:      mintEventSource,
		To:        asset.OwnerID.String(),
		CreatedAt: now,
	}
	if err := s.assetRepo.AppendEvent(ctx, dbTx, mintEvent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append mint event: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	asset.History = append(asset.History, *mintEvent)

	s.metrics.IncrementAssetMinted(string(asset.Type))
	if verdict.ShouldLockAssets {
		s.metrics.IncrementAssetLocked()
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &req.UserContext.UserID,
		Action:       domain.AuditActionMint,
		ResourceType: "asset",
		ResourceID:   asset.ID.String(),
		Details:      fmt.Sprintf("minted %s asset (locked=%t)", asset.Type, verdict.ShouldLockAssets),
		IPAddress:    req.ClientIP,
	})

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("owner_id", asset.OwnerID.String()).
		Str("type", string(asset.Type)).
		Bool("locked", asset.Status == domain.AssetStatusLocked).
		Msg("asset minted")

	return asset, nil
}

// CreateAsset is the direct creation path: no moderation review, caller
// supplies restrictions and expiry.
func (s *AssetServiceImpl) CreateAsset(ctx context.Context, req ports.CreateAssetRequest) (*domain.Asset, error) {
	if req.Value.IsNegative() {
		return nil, apperror.ErrInvalidAmount()
	}

	op := domain.AssetOperation{
		Kind:      domain.OpEarn,
		Amount:    req.Value,
		AssetType: req.AssetType,
	}
	verdict := s.compliance.ValidateAssetOperation(req.UserContext, op, "")
	if !verdict.IsCompliant {
		return nil, apperror.ErrComplianceDenied(verdict.Reason)
	}

	now := time.Now().UTC()
	asset := &domain.Asset{
		ID:           uuid.New(),
		Type:         req.AssetType,
		Value:        req.Value,
		OwnerID:      req.UserContext.UserID,
		CreatorID:    req.UserContext.UserID,
		Status:       domain.AssetStatusActive,
		Restrictions: req.Restrictions,
		ExpiresAt:    req.ExpiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if verdict.ShouldLockAssets {
		asset.Status = domain.AssetStatusLocked
		asset.LockInfo = minorLockInfo(req.UserContext.Age, now)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.assetRepo.Create(ctx, dbTx, asset); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create asset: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("owner_id", asset.OwnerID.String()).
		Str("type", string(asset.Type)).
		Msg("asset created")

	return asset, nil
}

// GetAsset returns a single asset. Expiry is evaluated lazily: an asset
// whose expiry elapsed reads as EXPIRED even before any status write.
func (s *AssetServiceImpl) GetAsset(ctx context.Context, assetID uuid.UUID, userCtx domain.UserContext) (*domain.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrAssetNotFound()
	}
	if asset.OwnerID != userCtx.UserID {
		return nil, apperror.ErrNotAssetOwner()
	}

	asset.Status = asset.EffectiveStatus(time.Now().UTC())
	return asset, nil
}

// TransferAsset re-owns a single asset record. Both parties are gated:
// the sender on transfer compliance, the receiver on receive compliance.
// The ownership write is compare-and-swap so a raced double transfer
// applies at most once.
func (s *AssetServiceImpl) TransferAsset(ctx context.Context, req ports.TransferRequest) (*domain.Asset, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Row lock: the asset is read FOR UPDATE so checks and the ownership
	// write see the same state.
	asset, err := s.assetRepo.GetByIDForUpdate(ctx, dbTx, req.AssetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrAssetNotFound()
	}
	if asset.OwnerID != req.From.UserID {
		return nil, apperror.ErrNotAssetOwner()
	}
	if !asset.IsTransferable() {
		return nil, apperror.ErrAssetNotTransferable()
	}

	sendOp := domain.AssetOperation{
		Kind:      domain.OpDigitalAssetTransfer,
		Amount:    asset.Value,
		AssetType: asset.Type,
	}
	sendVerdict := s.compliance.ValidateAssetOperation(req.From, sendOp, "")
	if !sendVerdict.IsCompliant {
		s.auditDenied(ctx, req.From, "transfer", sendVerdict.Reason, req.ClientIP)
		return nil, apperror.ErrComplianceDenied(sendVerdict.Reason)
	}

	recvOp := domain.AssetOperation{
		Kind:      domain.OpReceive,
		Amount:    asset.Value,
		AssetType: asset.Type,
	}
	recvVerdict := s.compliance.ValidateAssetOperation(req.To, recvOp, "")
	if !recvVerdict.IsCompliant {
		s.auditDenied(ctx, req.To, "receive", recvVerdict.Reason, req.ClientIP)
		return nil, apperror.ErrComplianceDenied(recvVerdict.Reason)
	}

	// Per-asset restrictions bind the receiver
	if r := asset.Restrictions; r != nil {
		if req.To.Age < r.MinAge {
			return nil, apperror.ErrComplianceDenied(fmt.Sprintf("Receiver does not meet the minimum age of %d for this asset", r.MinAge))
		}
		if r.RequiresKYC && !req.To.HasVerifiedKYC() {
			return nil, apperror.ErrComplianceDenied("Receiver must have verified KYC status for this asset")
		}
	}

	now := time.Now().UTC()

	// CAS on ownership: a lost race surfaces as a state conflict
	if err := s.assetRepo.UpdateOwner(ctx, dbTx, asset.ID, req.From.UserID, req.To.UserID); err != nil {
		if errors.Is(err, ports.ErrNoRowsAffected) {
			return nil, apperror.ErrAssetStateConflict()
		}
		return nil, apperror.InternalError(fmt.Errorf("update owner: %w", err))
	}

	// A minor receiver takes the asset locked
	if recvVerdict.ShouldLockAssets {
		lockInfo := minorLockInfo(req.To.Age, now)
		if err := s.assetRepo.UpdateStatus(ctx, dbTx, asset.ID, domain.AssetStatusActive, domain.AssetStatusLocked, lockInfo); err != nil {
			if errors.Is(err, ports.ErrNoRowsAffected) {
				return nil, apperror.ErrAssetStateConflict()
			}
			return nil, apperror.InternalError(fmt.Errorf("lock transferred asset: %w", err))
		}
		asset.Status = domain.AssetStatusLocked
		asset.LockInfo = lockInfo
	}

	transferEvent := &domain.AssetEvent{
		ID:        uuid.New(),
		AssetID:   asset.ID,
		Type:      domain.AssetEventTransfer,
		From:      req.From.UserID.String(),
		To:        req.To.UserID.String(),
		CreatedAt: now,
	}
	if err := s.assetRepo.AppendEvent(ctx, dbTx, transferEvent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append transfer event: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	asset.OwnerID = req.To.UserID
	asset.UpdatedAt = now
	asset.History = append(asset.History, *transferEvent)

	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &req.From.UserID,
		Action:       domain.AuditActionTransfer,
		ResourceType: "asset",
		ResourceID:   asset.ID.String(),
		Details:      fmt.Sprintf("transferred to %s (receiver locked=%t)", req.To.UserID, recvVerdict.ShouldLockAssets),
		IPAddress:    req.ClientIP,
	})

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("from", req.From.UserID.String()).
		Str("to", req.To.UserID.String()).
		Msg("asset transferred")

	return asset, nil
}

// LockAsset places an active asset under a lock. Zero duration selects
// the 30-day default.
func (s *AssetServiceImpl) LockAsset(ctx context.Context, req ports.LockRequest) (*domain.Asset, error) {
	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	asset, err := s.assetRepo.GetByIDForUpdate(ctx, dbTx, req.AssetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrAssetNotFound()
	}
	if asset.OwnerID != req.UserContext.UserID {
		return nil, apperror.ErrNotAssetOwner()
	}
	if asset.Status != domain.AssetStatusActive {
		return nil, apperror.ErrAssetStateConflict()
	}

	days := req.DurationDays
	if days <= 0 {
		days = defaultLockDays
	}
	reason := req.Reason
	if reason == "" {
		reason = domain.LockReasonAgeRestriction
	}

	now := time.Now().UTC()
	lockInfo := &domain.LockInfo{
		LockID:      uuid.New(),
		Reason:      reason,
		LockedUntil: now.AddDate(0, 0, days),
	}

	if err := s.assetRepo.UpdateStatus(ctx, dbTx, asset.ID, domain.AssetStatusActive, domain.AssetStatusLocked, lockInfo); err != nil {
		if errors.Is(err, ports.ErrNoRowsAffected) {
			return nil, apperror.ErrAssetStateConflict()
		}
		return nil, apperror.InternalError(fmt.Errorf("lock asset: %w", err))
	}

	lockEvent := &domain.AssetEvent{
		ID:        uuid.New(),
		AssetID:   asset.ID,
		Type:      domain.AssetEventLock,
		From:      string(domain.AssetStatusActive),
		To:        string(domain.AssetStatusLocked),
		CreatedAt: now,
	}
	if err := s.assetRepo.AppendEvent(ctx, dbTx, lockEvent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append lock event: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	asset.Status = domain.AssetStatusLocked
	asset.LockInfo = lockInfo
	asset.UpdatedAt = now
	asset.History = append(asset.History, *lockEvent)

	s.metrics.IncrementAssetLocked()
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &req.UserContext.UserID,
		Action:       domain.AuditActionLock,
		ResourceType: "asset",
		ResourceID:   asset.ID.String(),
		Details:      fmt.Sprintf("locked for %d days (%s)", days, reason),
	})

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("reason", string(reason)).
		Time("locked_until", lockInfo.LockedUntil).
		Msg("asset locked")

	return asset, nil
}

// UnlockAsset releases a locked asset. Verification data is mandatory:
// this core never inspects documents, it only requires the caller to
// assert that verification happened. Only verified adults may unlock.
func (s *AssetServiceImpl) UnlockAsset(ctx context.Context, req ports.UnlockRequest) (*domain.Asset, error) {
	if req.VerificationData == nil {
		return nil, apperror.ErrVerificationRequired()
	}
	if req.UserContext.IsMinor() || !req.UserContext.HasVerifiedKYC() {
		return nil, apperror.ErrComplianceDenied("Unlocking requires a verified adult account")
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	asset, err := s.assetRepo.GetByIDForUpdate(ctx, dbTx, req.AssetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrAssetNotFound()
	}
	if asset.OwnerID != req.UserContext.UserID {
		return nil, apperror.ErrNotAssetOwner()
	}
	if !asset.IsLocked() {
		return nil, apperror.ErrAssetNotLocked()
	}

	now := time.Now().UTC()

	if err := s.assetRepo.UpdateStatus(ctx, dbTx, asset.ID, domain.AssetStatusLocked, domain.AssetStatusActive, nil); err != nil {
		if errors.Is(err, ports.ErrNoRowsAffected) {
			return nil, apperror.ErrAssetStateConflict()
		}
		return nil, apperror.InternalError(fmt.Errorf("unlock asset: %w", err))
	}

	unlockEvent := &domain.AssetEvent{
		ID:        uuid.New(),
		AssetID:   asset.ID,
		Type:      domain.AssetEventUnlock,
		From:      string(domain.AssetStatusLocked),
		To:        string(domain.AssetStatusActive),
		CreatedAt: now,
	}
	if err := s.assetRepo.AppendEvent(ctx, dbTx, unlockEvent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append unlock event: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	asset.Status = domain.AssetStatusActive
	asset.LockInfo = nil
	asset.UpdatedAt = now
	asset.History = append(asset.History, *unlockEvent)

	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &req.UserContext.UserID,
		Action:       domain.AuditActionUnlock,
		ResourceType: "asset",
		ResourceID:   asset.ID.String(),
		Details:      fmt.Sprintf("unlocked via %s verification", req.VerificationData.Method),
	})

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("owner_id", asset.OwnerID.String()).
		Msg("asset unlocked")

	return asset, nil
}

// CompoundAsset applies a one-shot growth multiplication to the asset's
// value: newValue = value x (1+rate). Cadence is the caller's problem;
// there is no scheduler.
func (s *AssetServiceImpl) CompoundAsset(ctx context.Context, req ports.CompoundRequest) (*domain.Asset, error) {
	if !req.Rate.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Read under the row lock: the multiplication bases on the value the
	// update will replace.
	asset, err := s.assetRepo.GetByIDForUpdate(ctx, dbTx, req.AssetID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get asset: %w", err))
	}
	if asset == nil {
		return nil, apperror.ErrAssetNotFound()
	}
	if asset.OwnerID != req.UserContext.UserID {
		return nil, apperror.ErrNotAssetOwner()
	}

	now := time.Now().UTC()
	newValue := asset.Value.Mul(decimal.NewFromInt(1).Add(req.Rate))

	if err := s.assetRepo.UpdateValue(ctx, dbTx, asset.ID, newValue); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update value: %w", err))
	}

	compoundEvent := &domain.AssetEvent{
		ID:        uuid.New(),
		AssetID:   asset.ID,
		Type:      domain.AssetEventCompound,
		From:      asset.Value.String(),
		To:        newValue.String(),
		CreatedAt: now,
	}
	if err := s.assetRepo.AppendEvent(ctx, dbTx, compoundEvent); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("append compound event: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	asset.Value = newValue
	asset.UpdatedAt = now
	asset.History = append(asset.History, *compoundEvent)

	s.log.Info().
		Str("asset_id", asset.ID.String()).
		Str("rate", req.Rate.String()).
		Str("new_value", newValue.String()).
		Msg("asset compounded")

	return asset, nil
}

// ProjectLockedValue projects how a minor's locked balance grows until
// the age of majority, compounding monthly: P x (1 + r/12)^(12t).
func (s *AssetServiceImpl) ProjectLockedValue(req ports.ProjectionRequest) ports.ProjectionResult {
	years := minorLockYearsCeiling - req.UserAge
	if years < 0 {
		years = 0
	}

	monthlyRate := req.AnnualRate.Div(decimal.NewFromInt(compoundingPerYear))
	periods := int64(compoundingPerYear * years)
	projected := req.CurrentValue.Mul(
		decimal.NewFromInt(1).Add(monthlyRate).Pow(decimal.NewFromInt(periods)),
	)

	return ports.ProjectionResult{
		YearsUntilUnlock: years,
		ProjectedValue:   projected,
	}
}

// minorLockInfo builds the age-restriction lock applied to assets a
// minor acquires: held until their projected 18th birthday.
func minorLockInfo(age int, now time.Time) *domain.LockInfo {
	years := domain.AdultAge - age
	if years < 0 {
		years = 0
	}
	return &domain.LockInfo{
		LockID:      uuid.New(),
		Reason:      domain.LockReasonAgeRestriction,
		LockedUntil: now.AddDate(years, 0, 0),
	}
}

func (s *AssetServiceImpl) auditDenied(ctx context.Context, userCtx domain.UserContext, operation, reason, clientIP string) {
	s.auditSvc.Log(ctx, &domain.AuditLog{
		UserID:       &userCtx.UserID,
		Action:       domain.AuditActionComplianceDenied,
		ResourceType: "asset",
		Details:      fmt.Sprintf("%s denied: %s", operation, reason),
		IPAddress:    clientIP,
	})
}
