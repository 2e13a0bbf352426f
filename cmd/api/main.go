package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mystery-box-service/config"
	"mystery-box-service/internal/adapter/chain"
	httpHandler "mystery-box-service/internal/adapter/http/handler"
	pgStorage "mystery-box-service/internal/adapter/storage/postgres"
	redisStorage "mystery-box-service/internal/adapter/storage/redis"
	"mystery-box-service/internal/core/domain"
	"mystery-box-service/internal/core/ports"
	"mystery-box-service/internal/service"
	"mystery-box-service/pkg/logger"
	"mystery-box-service/pkg/metrics"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
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

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Mystery Box Service")

	ctx := context.Background()
	clock := clockwork.NewRealClock()

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

	// Initialize chain RPC backend
	chainClient, err := chain.Dial(ctx, cfg.Chain, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to chain RPC")
	}
	defer chainClient.Close()

	// Initialize repositories
	replayRepo := pgStorage.NewReplayRepo(pool)
	stockRepo := pgStorage.NewStockRepo(pool)
	purchaseRepo := pgStorage.NewPurchaseRepo(pool)

	// Initialize Redis stores
	replayCache := redisStorage.NewReplayCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize metrics
	metricsReg := prometheus.NewRegistry()
	met := metrics.New(metricsReg)

	// Initialize core services
	signer, err := service.NewECDSAAuthoritySigner(cfg.Chain.AuthorityKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize authority signer")
	}
	log.Info().Str("authority", signer.Address().Hex()).Msg("authority signer ready")

	guard := service.NewReplayGuard(replayRepo, replayCache, clock, cfg.Replay.MaxAge, cfg.Replay.MaxFutureSkew, met,
		logger.WithComponent(log, "replay_guard"))
	fairness := service.NewSHA256FairnessEngine()
	resolver := service.NewPrizeResolver(fairness, stockRepo, met,
		logger.WithComponent(log, "prize_resolver"))
	oracle := service.NewStaticPriceOracle(cfg.Pricing.TokenPriceUSD)

	// Chain adapters
	verifier := chain.NewReceiptBurnVerifier(chainClient, common.HexToAddress(cfg.Chain.TokenContract), cfg.Chain.CallTimeout,
		logger.WithComponent(log, "burn_verifier"))
	dispatcher, err := chain.NewTxSettlementDispatcher(chainClient, cfg.Chain, clock,
		logger.WithComponent(log, "settlement_dispatcher"))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize settlement dispatcher")
	}

	// Initialize business service
	purchaseSvc := service.NewPurchaseService(
		signer,
		guard,
		verifier,
		fairness,
		resolver,
		stockRepo,
		dispatcher,
		purchaseRepo,
		oracle,
		domain.Catalog(),
		cfg.Pricing.TokenDecimals,
		clock,
		met,
		logger.WithComponent(log, "purchase_pipeline"),
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		PurchaseSvc:    purchaseSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		MetricsReg:     metricsReg,
		Logger:         log,
	})

	// Periodic replay record purge
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				service.PurgeReplayRecords(purgeCtx, replayRepo, clock, cfg.Replay.RecordTTL, log)
			}
		}
	}()

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

	log.Info().Msg("Server exited")
}
