package handler

import (
	"digital-asset-gateway/internal/adapter/http/middleware"
	redisStore "digital-asset-gateway/internal/adapter/storage/redis"
	"digital-asset-gateway/internal/core/ports"
	"digital-asset-gateway/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	RewardSvc      ports.RewardService
	StakingSvc     ports.StakingService
	AssetSvc       ports.AssetService
	ComplianceSvc  ports.ComplianceService
	AccountRepo    ports.AccountRepository
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Metrics        *metrics.Metrics   // nil = metrics disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation
	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	rewardHandler := NewRewardHandler(deps.RewardSvc)
	rewards := v1.Group("/rewards", jwtAuth)
	{
		rewards.GET("/balance", rl("rewards"), rewardHandler.GetBalance)
		rewards.POST("/credit", rl("rewards"), rewardHandler.Credit)
		rewards.POST("/redeem", rl("rewards"), rewardHandler.Redeem)
	}

	stakingHandler := NewStakingHandler(deps.StakingSvc)
	staking := v1.Group("/staking", jwtAuth)
	{
		staking.POST("", rl("staking"), stakingHandler.Stake)
		staking.GET("/active", rl("staking"), stakingHandler.ListActive)
		staking.POST("/:id/unstake", rl("staking"), stakingHandler.Unstake)
	}

	assetHandler := NewAssetHandler(deps.AssetSvc, deps.AccountRepo)
	assets := v1.Group("/assets", jwtAuth)
	{
		assets.POST("/mint", rl("assets"), assetHandler.Mint)
		assets.POST("", rl("assets"), assetHandler.Create)
		assets.GET("/projection", rl("assets"), assetHandler.Projection)
		assets.GET("/:id", rl("assets"), assetHandler.Get)
		assets.POST("/:id/transfer", rl("assets"), assetHandler.Transfer)
		assets.POST("/:id/lock", rl("assets"), assetHandler.Lock)
		assets.POST("/:id/unlock", rl("assets"), assetHandler.Unlock)
		assets.POST("/:id/compound", rl("assets"), assetHandler.Compound)
	}

	complianceHandler := NewComplianceHandler(deps.ComplianceSvc)
	compliance := v1.Group("/compliance", jwtAuth)
	{
		compliance.POST("/check", rl("compliance"), complianceHandler.Check)
	}

	return r
}
