package service

import (
	"context"
	"testing"
	"time"

	"digital-asset-gateway/internal/adapter/storage/memory"
	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stakingFixture struct {
	svc         *StakingServiceImpl
	stakingRepo *memory.StakingRepo
	balanceRepo *memory.BalanceRepo
}

func newStakingFixture() *stakingFixture {
	stakingRepo := memory.NewStakingRepo()
	balanceRepo := memory.NewBalanceRepo()
	svc := NewStakingService(
		stakingRepo,
		balanceRepo,
		memory.NewIdempotencyRepo(),
		memory.NewIdempotencyCache(),
		newComplianceService(),
		memory.NewTransactor(),
		NewAuditService(nil, zerolog.Nop()),
		nil,
		zerolog.Nop(),
	)
	return &stakingFixture{svc: svc, stakingRepo: stakingRepo, balanceRepo: balanceRepo}
}

func (f *stakingFixture) fund(t *testing.T, userID uuid.UUID, available int64) {
	t.Helper()
	ctx := context.Background()
	tx, _ := memory.NewTransactor().Begin(ctx)
	require.NoError(t, f.balanceRepo.Create(ctx, tx, domain.NewRewardBalance(userID, time.Now().UTC())))
	require.NoError(t, f.balanceRepo.UpdateBuckets(ctx, tx, userID, decimal.NewFromInt(available), decimal.Zero))
}

func TestCalculateStakingAPY(t *testing.T) {
	testCases := []struct {
		name      string
		assetType domain.AssetType
		days      int
		want      string
	}{
		{name: "Token for 400 days", assetType: domain.AssetTypeToken, days: 400, want: "0.075"},
		{name: "Token for 365 days", assetType: domain.AssetTypeToken, days: 365, want: "0.075"},
		{name: "Token for 180 days", assetType: domain.AssetTypeToken, days: 180, want: "0.0625"},
		{name: "Token for 90 days", assetType: domain.AssetTypeToken, days: 90, want: "0.055"},
		{name: "Token for 30 days", assetType: domain.AssetTypeToken, days: 30, want: "0.05"},
		{name: "Reward points for 90 days", assetType: domain.AssetTypeRewardPoints, days: 90, want: "0.033"},
		{name: "NFT for 365 days", assetType: domain.AssetTypeNFT, days: 365, want: "0.03"},
		{name: "Unknown type falls back", assetType: domain.AssetTypeBadge, days: 30, want: "0.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			apy := CalculateStakingAPY(tc.assetType, tc.days)
			assert.True(t, apy.Equal(decimal.RequireFromString(tc.want)), "got %s", apy)
		})
	}
}

func TestStakeAsset(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")
	f.fund(t, adult.UserID, 2000)

	contract, err := f.svc.StakeAsset(context.Background(), ports.StakeRequest{
		UserContext:  adult,
		Amount:       decimal.NewFromInt(1000),
		DurationDays: 365,
		AssetType:    domain.AssetTypeToken,
		Reference:    "stake-1",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StakingStatusActive, contract.Status)
	assert.True(t, contract.APY.Equal(decimal.RequireFromString("0.075")))
	// 1000 x 0.075 x 365/365 = 75
	assert.True(t, contract.EstimatedReward.Equal(decimal.NewFromInt(75)), "got %s", contract.EstimatedReward)
	assert.Equal(t, contract.StartDate.AddDate(0, 0, 365), contract.MaturityDate)

	// Principal debited from the liquid bucket
	balance, _ := f.balanceRepo.GetByUserID(context.Background(), adult.UserID)
	assert.True(t, balance.Available.Equal(decimal.NewFromInt(1000)))
}

func TestStakeAsset_InsufficientBalance(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")
	f.fund(t, adult.UserID, 100)

	_, err := f.svc.StakeAsset(context.Background(), ports.StakeRequest{
		UserContext:  adult,
		Amount:       decimal.NewFromInt(500),
		DurationDays: 90,
		AssetType:    domain.AssetTypeToken,
		Reference:    "stake-1",
	})

	assertAppError(t, err, "STK_001")
	assert.Contains(t, err.Error(), "Insufficient TOKEN balance")
}

func TestStakeAsset_InvalidDuration(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")

	_, err := f.svc.StakeAsset(context.Background(), ports.StakeRequest{
		UserContext:  adult,
		Amount:       decimal.NewFromInt(10),
		DurationDays: 0,
		AssetType:    domain.AssetTypeToken,
	})
	assertAppError(t, err, "STK_005")
}

func TestStakeAsset_RegionRestricted(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "CN")
	f.fund(t, adult.UserID, 1000)

	_, err := f.svc.StakeAsset(context.Background(), ports.StakeRequest{
		UserContext:  adult,
		Amount:       decimal.NewFromInt(100),
		DurationDays: 90,
		AssetType:    domain.AssetTypeToken,
	})
	assertAppError(t, err, "CMP_001")
}

func TestStakeAsset_MinorRewardPointsAllowed(t *testing.T) {
	f := newStakingFixture()
	minor := userCtx(16, domain.KYCStatusUnverified, "US")
	f.fund(t, minor.UserID, 200)

	contract, err := f.svc.StakeAsset(context.Background(), ports.StakeRequest{
		UserContext:  minor,
		Amount:       decimal.NewFromInt(100),
		DurationDays: 90,
		AssetType:    domain.AssetTypeRewardPoints,
		Reference:    "stake-1",
	})

	require.NoError(t, err)
	assert.True(t, contract.APY.Equal(decimal.RequireFromString("0.033")))
	// 100 x 0.033 x 90/365
	expected, _ := contract.EstimatedReward.Float64()
	assert.InDelta(t, 0.8137, expected, 0.001)
}

func TestStakeAsset_IdempotentReplay(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")
	f.fund(t, adult.UserID, 1000)

	req := ports.StakeRequest{
		UserContext:  adult,
		Amount:       decimal.NewFromInt(500),
		DurationDays: 90,
		AssetType:    domain.AssetTypeToken,
		Reference:    "stake-once",
	}

	first, err := f.svc.StakeAsset(context.Background(), req)
	require.NoError(t, err)

	second, err := f.svc.StakeAsset(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.StakingID, second.StakingID)

	// Only one debit happened
	balance, _ := f.balanceRepo.GetByUserID(context.Background(), adult.UserID)
	assert.True(t, balance.Available.Equal(decimal.NewFromInt(500)))
}

// seedContract inserts a contract with a backdated start so tests can
// exercise maturity and partial-completion math without clock injection.
func (f *stakingFixture) seedContract(t *testing.T, userID uuid.UUID, amount int64, durationDays, elapsedDays int) *domain.StakingContract {
	t.Helper()
	ctx := context.Background()
	tx, _ := memory.NewTransactor().Begin(ctx)

	now := time.Now().UTC()
	start := now.AddDate(0, 0, -elapsedDays)
	apy := CalculateStakingAPY(domain.AssetTypeToken, durationDays)
	amt := decimal.NewFromInt(amount)
	contract := &domain.StakingContract{
		StakingID:       uuid.New(),
		UserID:          userID,
		AssetType:       domain.AssetTypeToken,
		Amount:          amt,
		DurationDays:    durationDays,
		APY:             apy,
		EstimatedReward: amt.Mul(apy).Mul(decimal.NewFromInt(int64(durationDays))).Div(decimal.NewFromInt(365)),
		StartDate:       start,
		MaturityDate:    start.AddDate(0, 0, durationDays),
		Status:          domain.StakingStatusActive,
		CreatedAt:       start,
		UpdatedAt:       start,
	}
	require.NoError(t, f.stakingRepo.Create(ctx, tx, contract))
	return contract
}

func TestUnstakeAssets_Matured(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")
	f.fund(t, adult.UserID, 0)

	// 365-day token contract, started 400 days ago: matured
	contract := f.seedContract(t, adult.UserID, 1000, 365, 400)

	result, err := f.svc.UnstakeAssets(context.Background(), ports.UnstakeRequest{
		UserContext: adult,
		StakingID:   contract.StakingID,
	})

	require.NoError(t, err)
	assert.False(t, result.EarlyUnstake)
	assert.True(t, result.Penalty.IsZero())
	// Full estimated reward: 1000 x 0.075 = 75
	assert.True(t, result.ActualReward.Equal(decimal.NewFromInt(75)), "got %s", result.ActualReward)
	assert.True(t, result.ReturnedAmount.Equal(decimal.NewFromInt(1075)))
	assert.Equal(t, domain.StakingStatusCompleted, result.Contract.Status)

	balance, _ := f.balanceRepo.GetByUserID(context.Background(), adult.UserID)
	assert.True(t, balance.Available.Equal(decimal.NewFromInt(1075)))
}

func TestUnstakeAssets_EarlyPenalty(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")
	f.fund(t, adult.UserID, 0)

	// 100-day contract, 50 days elapsed: halfway
	contract := f.seedContract(t, adult.UserID, 1000, 100, 50)

	result, err := f.svc.UnstakeAssets(context.Background(), ports.UnstakeRequest{
		UserContext: adult,
		StakingID:   contract.StakingID,
	})

	require.NoError(t, err)
	assert.True(t, result.EarlyUnstake)
	// Penalty: 5% of principal
	assert.True(t, result.Penalty.Equal(decimal.NewFromInt(50)))
	// Reward: estimated x 0.5 completion x 0.5 early factor
	estimated, _ := contract.EstimatedReward.Float64()
	actual, _ := result.ActualReward.Float64()
	assert.InDelta(t, estimated*0.25, actual, 0.01)
	returned, _ := result.ReturnedAmount.Float64()
	assert.InDelta(t, 1000-50+estimated*0.25, returned, 0.01)
}

func TestUnstakeAssets_Errors(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")
	stranger := userCtx(40, domain.KYCStatusVerified, "US")

	t.Run("Not found", func(t *testing.T) {
		_, err := f.svc.UnstakeAssets(context.Background(), ports.UnstakeRequest{
			UserContext: adult,
			StakingID:   uuid.New(),
		})
		assertAppError(t, err, "STK_002")
	})

	contract := f.seedContract(t, adult.UserID, 100, 90, 10)

	t.Run("Not owned", func(t *testing.T) {
		_, err := f.svc.UnstakeAssets(context.Background(), ports.UnstakeRequest{
			UserContext: stranger,
			StakingID:   contract.StakingID,
		})
		assertAppError(t, err, "STK_003")
	})

	t.Run("Already completed", func(t *testing.T) {
		f.fund(t, adult.UserID, 0)
		_, err := f.svc.UnstakeAssets(context.Background(), ports.UnstakeRequest{
			UserContext: adult,
			StakingID:   contract.StakingID,
		})
		require.NoError(t, err)

		_, err = f.svc.UnstakeAssets(context.Background(), ports.UnstakeRequest{
			UserContext: adult,
			StakingID:   contract.StakingID,
		})
		assertAppError(t, err, "STK_004")
	})
}

func TestUnstakeAssets_MinorPayoutLands_Locked(t *testing.T) {
	f := newStakingFixture()
	minor := userCtx(16, domain.KYCStatusUnverified, "US")
	f.fund(t, minor.UserID, 0)

	contract := f.seedContract(t, minor.UserID, 100, 90, 100)

	result, err := f.svc.UnstakeAssets(context.Background(), ports.UnstakeRequest{
		UserContext: minor,
		StakingID:   contract.StakingID,
	})
	require.NoError(t, err)

	balance, _ := f.balanceRepo.GetByUserID(context.Background(), minor.UserID)
	assert.True(t, balance.Available.IsZero())
	assert.True(t, balance.Locked.Equal(result.ReturnedAmount))
}

func TestGetActiveStakingContracts(t *testing.T) {
	f := newStakingFixture()
	adult := userCtx(30, domain.KYCStatusUnverified, "US")

	f.seedContract(t, adult.UserID, 100, 90, 10)
	f.seedContract(t, adult.UserID, 200, 180, 10)

	contracts, err := f.svc.GetActiveStakingContracts(context.Background(), adult.UserID)
	require.NoError(t, err)
	assert.Len(t, contracts, 2)
}
