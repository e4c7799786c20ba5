package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpHandler "digital-asset-gateway/internal/adapter/http/handler"
	memStorage "digital-asset-gateway/internal/adapter/storage/memory"
	redisStorage "digital-asset-gateway/internal/adapter/storage/redis"
	"digital-asset-gateway/internal/core/domain"
	"digital-asset-gateway/internal/service"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack on the in-memory storage
// driver, with miniredis backing the real Redis idempotency cache and
// rate limit store. This exercises the HTTP layer, middleware, handlers,
// services, and Redis stores end-to-end.

type testApp struct {
	server      *httptest.Server
	redis       *miniredis.Miniredis
	rdb         *goredis.Client
	accountRepo *memStorage.AccountRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	accountRepo := memStorage.NewAccountRepo()
	balanceRepo := memStorage.NewBalanceRepo()
	assetRepo := memStorage.NewAssetRepo()
	stakingRepo := memStorage.NewStakingRepo()
	idempRepo := memStorage.NewIdempotencyRepo()
	auditRepo := memStorage.NewAuditRepo()
	transactor := memStorage.NewTransactor()

	idempCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	log := zerolog.Nop()

	complianceSvc := service.NewComplianceService(decimal.Zero, nil)
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService("integration-test-secret", time.Hour, "digital-asset-gateway-test")
	auditSvc := service.NewAuditService(auditRepo, log)

	authSvc := service.NewAuthService(accountRepo, hashSvc, tokenSvc, auditSvc)
	rewardSvc := service.NewRewardService(balanceRepo, idempRepo, idempCache, complianceSvc, transactor, auditSvc, nil, log)
	stakingSvc := service.NewStakingService(stakingRepo, balanceRepo, idempRepo, idempCache, complianceSvc, transactor, auditSvc, nil, log)
	assetSvc := service.NewAssetService(assetRepo, complianceSvc, nil, transactor, auditSvc, nil, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		RewardSvc:      rewardSvc,
		StakingSvc:     stakingSvc,
		AssetSvc:       assetSvc,
		ComplianceSvc:  complianceSvc,
		AccountRepo:    accountRepo,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		AuditSvc:       auditSvc,
		Logger:         log,
	})

	return &testApp{
		server:      httptest.NewServer(router),
		redis:       mr,
		rdb:         rdb,
		accountRepo: accountRepo,
	}
}

func (a *testApp) close() {
	a.server.Close()
	_ = a.rdb.Close()
	a.redis.Close()
}

// doJSON issues a request and decodes the response envelope into a map.
func (a *testApp) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	}
	return resp.StatusCode, envelope
}

func (a *testApp) register(t *testing.T, username, dob string) map[string]any {
	t.Helper()
	status, body := a.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username":      username,
		"password":      "StrongPass123!",
		"date_of_birth": dob,
		"region":        "US",
	})
	require.Equal(t, http.StatusCreated, status, "register: %v", body)
	return body["data"].(map[string]any)
}

func (a *testApp) login(t *testing.T, username string) string {
	t.Helper()
	status, body := a.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": username,
		"password": "StrongPass123!",
	})
	require.Equal(t, http.StatusOK, status, "login: %v", body)
	return body["data"].(map[string]any)["token"].(string)
}

// verifyKYC flips the stored account to verified. A fresh login afterwards
// yields a token carrying the updated status.
func (a *testApp) verifyKYC(t *testing.T, username string) {
	t.Helper()
	account, err := a.accountRepo.GetByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NotNil(t, account)
	account.KYCStatus = domain.KYCStatusVerified
	require.NoError(t, a.accountRepo.Create(context.Background(), account))
}

// adultDOB is well past the age of majority.
const adultDOB = "1990-05-10"

// minorDOB yields a user aged 13-17 for the foreseeable future of this
// test suite.
func minorDOB() string {
	return time.Now().UTC().AddDate(-15, 0, 0).Format("2006-01-02")
}

func errorCode(body map[string]any) string {
	code, _ := body["error_code"].(string)
	return code
}

func TestRewardLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "reward_user", adultDOB)
	token := app.login(t, "reward_user")

	// Credit 500 points
	status, body := app.doJSON(t, http.MethodPost, "/api/v1/rewards/credit", token, map[string]any{
		"amount":    "500",
		"reason":    "signup bonus",
		"reference": "ref-credit-1",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	data := body["data"].(map[string]any)
	assert.Equal(t, "500", data["available"])
	assert.Equal(t, "0", data["locked"])
	assert.Equal(t, false, data["was_locked"])

	// Replaying the same reference is idempotent: same response, no
	// double credit.
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/rewards/credit", token, map[string]any{
		"amount":    "500",
		"reason":    "signup bonus",
		"reference": "ref-credit-1",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	assert.Equal(t, "500", body["data"].(map[string]any)["available"])

	// Redeem 200
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/rewards/redeem", token, map[string]any{
		"amount":  "200",
		"purpose": "gift card",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "300", body["data"].(map[string]any)["available"])

	// Over-redeeming fails with the balance attached
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/rewards/redeem", token, map[string]any{
		"amount": "1000",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "RWD_001", errorCode(body))

	// Balance reflects the single credit and single redeem
	status, body = app.doJSON(t, http.MethodGet, "/api/v1/rewards/balance", token, nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, "300", data["available"])
	assert.Equal(t, "300", data["total"])
}

func TestMinorRewardLocking(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "minor_user", minorDOB())
	token := app.login(t, "minor_user")

	// A minor's credit lands in the locked bucket
	status, body := app.doJSON(t, http.MethodPost, "/api/v1/rewards/credit", token, map[string]any{
		"amount":    "100",
		"reference": "ref-minor-1",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	data := body["data"].(map[string]any)
	assert.Equal(t, "0", data["available"])
	assert.Equal(t, "100", data["locked"])
	assert.Equal(t, true, data["was_locked"])

	// Redemption is not a minor-permitted operation
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/rewards/redeem", token, map[string]any{
		"amount": "50",
	})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "CMP_001", errorCode(body))

	// Balance view flags the caller as a minor
	status, body = app.doJSON(t, http.MethodGet, "/api/v1/rewards/balance", token, nil)
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, "100", data["locked"])
	assert.Equal(t, true, data["is_minor"])
}

func TestStakingLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "staking_user", adultDOB)
	token := app.login(t, "staking_user")

	status, body := app.doJSON(t, http.MethodPost, "/api/v1/rewards/credit", token, map[string]any{
		"amount":    "1000",
		"reference": "ref-stake-fund",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)

	// Stake 400 for 90 days
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/staking", token, map[string]any{
		"amount":        "400",
		"duration_days": 90,
		"asset_type":    "REWARD_POINTS",
		"reference":     "ref-stake-1",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	contract := body["data"].(map[string]any)
	assert.Equal(t, "active", contract["status"])
	assert.Equal(t, "400", contract["amount"])
	stakingID := contract["staking_id"].(string)

	// Principal was debited from the liquid bucket
	status, body = app.doJSON(t, http.MethodGet, "/api/v1/rewards/balance", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "600", body["data"].(map[string]any)["available"])

	// One active contract listed
	status, body = app.doJSON(t, http.MethodGet, "/api/v1/staking/active", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["data"].(map[string]any)["count"])

	// Early unstake pays the principal back minus the 5% penalty
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/staking/"+stakingID+"/unstake", token, nil)
	require.Equal(t, http.StatusOK, status, "%v", body)
	result := body["data"].(map[string]any)
	assert.Equal(t, true, result["early_unstake"])
	assert.Equal(t, "20", result["penalty"])

	// Unstaking a completed contract conflicts
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/staking/"+stakingID+"/unstake", token, nil)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "STK_004", errorCode(body))

	status, body = app.doJSON(t, http.MethodGet, "/api/v1/staking/active", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["data"].(map[string]any)["count"])
}

func TestStakeInsufficientBalance(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "broke_staker", adultDOB)
	token := app.login(t, "broke_staker")

	status, body := app.doJSON(t, http.MethodPost, "/api/v1/staking", token, map[string]any{
		"amount":        "100",
		"duration_days": 30,
		"asset_type":    "REWARD_POINTS",
		"reference":     "ref-broke-1",
	})
	require.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "STK_001", errorCode(body))
}

func TestAssetLockUnlockLifecycle(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "asset_user", adultDOB)
	app.verifyKYC(t, "asset_user")
	token := app.login(t, "asset_user")

	// Mint an active asset
	status, body := app.doJSON(t, http.MethodPost, "/api/v1/assets/mint", token, map[string]any{
		"asset_type": "NFT",
		"value":      "250",
		"metadata":   map[string]string{"name": "genesis"},
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	asset := body["data"].(map[string]any)
	assert.Equal(t, "ACTIVE", asset["status"])
	assetID := asset["id"].(string)

	// Lock it for 30 days
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/assets/"+assetID+"/lock", token, map[string]any{
		"duration_days": 30,
		"reason":        "USER_REQUESTED",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, "LOCKED", body["data"].(map[string]any)["status"])

	// Locking a locked asset conflicts
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/assets/"+assetID+"/lock", token, map[string]any{
		"duration_days": 30,
	})
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "AST_006", errorCode(body))

	// Unlocking without verification data is rejected
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/assets/"+assetID+"/unlock", token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "AST_004", errorCode(body))

	// Unlock with verification proof
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/assets/"+assetID+"/unlock", token, map[string]any{
		"verification": map[string]any{
			"method":       "document",
			"document_ref": "doc-123",
			"verified_at":  time.Now().UTC().Format(time.RFC3339),
		},
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	asset = body["data"].(map[string]any)
	assert.Equal(t, "ACTIVE", asset["status"])
	assert.Nil(t, asset["lock_info"])

	// History carries mint, lock, unlock
	status, body = app.doJSON(t, http.MethodGet, "/api/v1/assets/"+assetID, token, nil)
	require.Equal(t, http.StatusOK, status)
	history := body["data"].(map[string]any)["history"].([]any)
	require.Len(t, history, 3)
	assert.Equal(t, "mint", history[0].(map[string]any)["type"])
	assert.Equal(t, "lock", history[1].(map[string]any)["type"])
	assert.Equal(t, "unlock", history[2].(map[string]any)["type"])
}

func TestTransferRequiresKYC(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "sender_user", adultDOB)
	recipient := app.register(t, "recipient_user", adultDOB)
	recipientID := recipient["user_id"].(string)
	token := app.login(t, "sender_user")

	status, body := app.doJSON(t, http.MethodPost, "/api/v1/assets/mint", token, map[string]any{
		"asset_type": "DISCOUNT",
		"value":      "50",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	assetID := body["data"].(map[string]any)["id"].(string)

	// An unverified sender cannot transfer
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/assets/"+assetID+"/transfer", token, map[string]any{
		"to_user_id": recipientID,
	})
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "CMP_001", errorCode(body))

	// After KYC verification and a fresh token the transfer succeeds
	app.verifyKYC(t, "sender_user")
	token = app.login(t, "sender_user")

	status, body = app.doJSON(t, http.MethodPost, "/api/v1/assets/"+assetID+"/transfer", token, map[string]any{
		"to_user_id": recipientID,
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	assert.Equal(t, recipientID, body["data"].(map[string]any)["owner_id"])

	// The sender no longer owns the asset
	status, body = app.doJSON(t, http.MethodGet, "/api/v1/assets/"+assetID, token, nil)
	require.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AST_002", errorCode(body))
}

func TestMinorMintIsLocked(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "minor_minter", minorDOB())
	token := app.login(t, "minor_minter")

	status, body := app.doJSON(t, http.MethodPost, "/api/v1/assets/mint", token, map[string]any{
		"asset_type": "BADGE",
		"value":      "10",
	})
	require.Equal(t, http.StatusCreated, status, "%v", body)
	asset := body["data"].(map[string]any)
	assert.Equal(t, "LOCKED", asset["status"])
	lockInfo := asset["lock_info"].(map[string]any)
	assert.Equal(t, "AGE_RESTRICTION", lockInfo["reason"])
}

func TestComplianceCheckEndpoint(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "compliance_user", adultDOB)
	token := app.login(t, "compliance_user")

	// KYC-gated operation for an unverified adult
	status, body := app.doJSON(t, http.MethodPost, "/api/v1/compliance/check", token, map[string]any{
		"operation": "digital_asset_transfer",
	})
	require.Equal(t, http.StatusOK, status, "%v", body)
	verdict := body["data"].(map[string]any)
	assert.Equal(t, false, verdict["is_compliant"])
	assert.Equal(t, false, verdict["kyc"].(map[string]any)["is_compliant"])

	// Regionally restricted asset type
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/compliance/check", token, map[string]any{
		"operation":  "earn",
		"asset_type": "TOKEN",
		"region":     "CN",
	})
	require.Equal(t, http.StatusOK, status)
	verdict = body["data"].(map[string]any)
	assert.Equal(t, false, verdict["is_compliant"])
	assert.Equal(t, false, verdict["regional"].(map[string]any)["is_compliant"])

	// Plain earn in the home region passes
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/compliance/check", token, map[string]any{
		"operation": "earn",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["data"].(map[string]any)["is_compliant"])
}

func TestAuthAndRateLimiting(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "rate_user", adultDOB)

	// Unauthenticated access is rejected
	status, body := app.doJSON(t, http.MethodGet, "/api/v1/rewards/balance", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_003", errorCode(body))

	// The login limiter allows 10 attempts per minute per client
	for i := 0; i < 10; i++ {
		status, _ = app.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"username": "rate_user",
			"password": "wrong-password",
		})
		require.Equal(t, http.StatusUnauthorized, status, "attempt %d", i)
	}
	status, body = app.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "rate_user",
		"password": "wrong-password",
	})
	require.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "RATE_001", errorCode(body))
}

func TestDuplicateRegistration(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.register(t, "dup_user", adultDOB)

	status, body := app.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username":      "dup_user",
		"password":      "StrongPass123!",
		"date_of_birth": adultDOB,
	})
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "AUTH_002", errorCode(body))
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	status, body := app.doJSON(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", fmt.Sprint(body["status"]))
}
