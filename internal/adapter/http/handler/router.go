package handler

import (
	"tokenvine/internal/adapter/http/middleware"
	"tokenvine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	SpendSvc       ports.SpendService
	ReconcilerSvc  ports.ReconcilerService
	WalletSvc      ports.WalletService
	TokenVerifier  ports.TokenVerifier
	SyncSecret     string
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
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

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

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

	jwtAuth := middleware.JWTAuth(deps.TokenVerifier, deps.Logger)
	parentOnly := middleware.RequireRole(middleware.RoleParent)

	tokenHandler := NewTokenHandler(deps.LedgerSvc)
	spendHandler := NewSpendRequestHandler(deps.SpendSvc)
	walletHandler := NewWalletHandler(deps.WalletSvc)

	// --- Session-authenticated routes (any family member) ---
	tokens := v1.Group("/tokens", jwtAuth)
	{
		tokens.GET("/balance", rl("tokens_read"), tokenHandler.GetBalance)
		tokens.GET("/history", rl("tokens_read"), tokenHandler.GetHistory)
		tokens.POST("/spend", rl("spend"), tokenHandler.Spend)
		tokens.POST("/requests", rl("spend_requests"), spendHandler.Create)
		tokens.GET("/requests", rl("tokens_read"), spendHandler.ListOwn)

		// --- Parent-only routes ---
		tokens.GET("/summary", parentOnly, rl("tokens_read"), tokenHandler.GetFamilySummary)
		tokens.GET("/requests/pending", parentOnly, rl("tokens_read"), spendHandler.ListPending)
		tokens.POST("/requests/:id/review", parentOnly, rl("review"), spendHandler.Review)
	}

	blockchain := v1.Group("/blockchain", jwtAuth, parentOnly)
	{
		blockchain.GET("/wallets", rl("tokens_read"), walletHandler.GetFamilyWallets)
	}

	// --- Internal routes (shared-secret, service-to-service) ---
	internalHandler := NewInternalHandler(deps.LedgerSvc, deps.ReconcilerSvc, deps.WalletSvc)
	internal := v1.Group("/internal", middleware.SyncSecretAuth(deps.SyncSecret))
	{
		internal.POST("/earn", rl("internal"), internalHandler.Earn)
		internal.POST("/chain-sync", rl("internal"), internalHandler.ChainSync)
		internal.POST("/wallets/ensure", rl("internal"), internalHandler.EnsureWallet)
	}

	return r
}
