package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tokenvine/config"
	"tokenvine/internal/adapter/chain"
	httpHandler "tokenvine/internal/adapter/http/handler"
	pgStorage "tokenvine/internal/adapter/storage/postgres"
	redisStorage "tokenvine/internal/adapter/storage/redis"
	"tokenvine/internal/core/ports"
	"tokenvine/internal/service"
	"tokenvine/internal/worker"
	"tokenvine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	chainEnabled := cfg.Chain.Enabled()
	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Bool("chain_enabled", chainEnabled).
		Msg("Starting Token Ledger Service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	accountRepo := pgStorage.NewAccountRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	spendReqRepo := pgStorage.NewSpendRequestRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	syncQueue := redisStorage.NewSyncQueue(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.Wallet.EncryptionKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	tokenVerifier := service.NewJWTTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	keyVault := chain.NewLocalKeyVault()
	chainClient := chain.NewRelayerClient(cfg.Chain, log)

	// Initialize business services
	ledgerSvc := service.NewLedgerService(
		accountRepo,
		ledgerRepo,
		spendReqRepo,
		walletRepo,
		transactor,
		syncQueue,
		chainEnabled,
		cfg.Tokens.DailyCap,
		log,
	)
	spendSvc := service.NewSpendService(accountRepo, spendReqRepo, ledgerSvc, transactor, log)
	reconcilerSvc := service.NewReconcilerService(ledgerRepo, walletRepo, chainClient, chainEnabled, log)
	walletSvc := service.NewWalletService(
		walletRepo,
		accountRepo,
		keyVault,
		encSvc,
		chainEnabled,
		cfg.Chain.ContractAddress,
		cfg.Chain.ExplorerBaseURL,
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Background chain sync worker (queue consumer + cron sweep)
	syncWorker := worker.NewSyncWorker(reconcilerSvc, syncQueue, cfg.Sync.Schedule, log)
	if chainEnabled {
		if err := syncWorker.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start chain sync worker")
		}
	} else {
		log.Info().Msg("Chain mirroring disabled, sync worker not started")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		SpendSvc:       spendSvc,
		ReconcilerSvc:  reconcilerSvc,
		WalletSvc:      walletSvc,
		TokenVerifier:  tokenVerifier,
		SyncSecret:     cfg.Sync.Secret,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if chainEnabled {
		syncWorker.Stop()
	}

	log.Info().Msg("Server exited")
}
