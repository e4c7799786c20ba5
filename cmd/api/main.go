package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"digital-asset-gateway/config"
	httpHandler "digital-asset-gateway/internal/adapter/http/handler"
	"digital-asset-gateway/internal/adapter/moderation"
	memStorage "digital-asset-gateway/internal/adapter/storage/memory"
	pgStorage "digital-asset-gateway/internal/adapter/storage/postgres"
	redisStorage "digital-asset-gateway/internal/adapter/storage/redis"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/internal/metrics"
	"digital-asset-gateway/internal/service"
	"digital-asset-gateway/pkg/logger"
)

// storageDeps is everything the selected persistence driver contributes
// to the wiring. rateLimitStore is nil for the memory driver, which
// disables rate limiting in the router.
type storageDeps struct {
	accountRepo    ports.AccountRepository
	balanceRepo    ports.BalanceRepository
	assetRepo      ports.AssetRepository
	stakingRepo    ports.StakingRepository
	idempRepo      ports.IdempotencyRepository
	auditRepo      ports.AuditRepository
	transactor     ports.DBTransactor
	idempCache     ports.IdempotencyCache
	rateLimitStore *redisStorage.RateLimitStore
	healthCheckers []ports.HealthChecker
	close          func()
}

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Digital Asset Gateway")

	ctx := context.Background()

	var deps storageDeps
	switch cfg.Storage.Driver {
	case "memory":
		deps = memoryStorage()
		log.Warn().Msg("Using in-memory storage; all state is lost on shutdown")
	default:
		deps, err = postgresStorage(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize storage")
		}
	}
	defer deps.close()

	// Metrics registry
	m := metrics.New()

	// Compliance validator
	nonKYCLimit, err := decimal.NewFromString(cfg.Compliance.NonKYCLimit)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Compliance.NonKYCLimit).Msg("Invalid compliance.non_kyc_limit")
	}
	complianceSvc := service.NewComplianceService(nonKYCLimit, m)

	// Core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	auditSvc := service.NewAuditService(deps.auditRepo, log)

	// External content moderation (optional)
	var moderationSvc ports.ModerationService
	if cfg.Moderation.BaseURL != "" {
		moderationSvc = moderation.New(cfg.Moderation.BaseURL, &http.Client{Timeout: cfg.Moderation.Timeout}, log)
		log.Info().Str("base_url", cfg.Moderation.BaseURL).Msg("Content moderation enabled")
	} else {
		log.Warn().Msg("Content moderation not configured; mints with embedded content will be rejected")
	}

	// Business services
	authSvc := service.NewAuthService(deps.accountRepo, hashSvc, tokenSvc, auditSvc)
	rewardSvc := service.NewRewardService(
		deps.balanceRepo, deps.idempRepo, deps.idempCache,
		complianceSvc, deps.transactor, auditSvc, m, log,
	)
	stakingSvc := service.NewStakingService(
		deps.stakingRepo, deps.balanceRepo, deps.idempRepo, deps.idempCache,
		complianceSvc, deps.transactor, auditSvc, m, log,
	)
	assetSvc := service.NewAssetService(
		deps.assetRepo, complianceSvc, moderationSvc,
		deps.transactor, auditSvc, m, log,
	)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded, Swagger UI available at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		RewardSvc:      rewardSvc,
		StakingSvc:     stakingSvc,
		AssetSvc:       assetSvc,
		ComplianceSvc:  complianceSvc,
		AccountRepo:    deps.accountRepo,
		TokenSvc:       tokenSvc,
		RateLimitStore: deps.rateLimitStore,
		HealthCheckers: deps.healthCheckers,
		AuditSvc:       auditSvc,
		Metrics:        m,
		Logger:         log,
	})

	// HTTP server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// postgresStorage wires the PostgreSQL repositories plus the Redis
// idempotency cache and rate limit store.
func postgresStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storageDeps, error) {
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return storageDeps{}, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		pool.Close()
		return storageDeps{}, fmt.Errorf("connect redis: %w", err)
	}

	return storageDeps{
		accountRepo:    pgStorage.NewAccountRepo(pool),
		balanceRepo:    pgStorage.NewBalanceRepo(pool),
		assetRepo:      pgStorage.NewAssetRepo(pool),
		stakingRepo:    pgStorage.NewStakingRepo(pool),
		idempRepo:      pgStorage.NewIdempotencyRepo(pool),
		auditRepo:      pgStorage.NewAuditRepository(pool),
		transactor:     pgStorage.NewTransactor(pool),
		idempCache:     redisStorage.NewIdempotencyCache(redisClient),
		rateLimitStore: redisStorage.NewRateLimitStore(redisClient),
		healthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(redisClient),
		},
		close: func() {
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing redis client")
			}
			pool.Close()
		},
	}, nil
}

// memoryStorage wires the in-process driver. There is no Redis, so rate
// limiting is disabled and there are no external dependencies to
// health-check.
func memoryStorage() storageDeps {
	return storageDeps{
		accountRepo: memStorage.NewAccountRepo(),
		balanceRepo: memStorage.NewBalanceRepo(),
		assetRepo:   memStorage.NewAssetRepo(),
		stakingRepo: memStorage.NewStakingRepo(),
		idempRepo:   memStorage.NewIdempotencyRepo(),
		auditRepo:   memStorage.NewAuditRepo(),
		transactor:  memStorage.NewTransactor(),
		idempCache:  memStorage.NewIdempotencyCache(),
		close:       func() {},
	}
}
