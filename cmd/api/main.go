package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"axiom-gateway/config"
	"axiom-gateway/internal/adapter/chain/stacks"
	httpHandler "axiom-gateway/internal/adapter/http/handler"
	pgStorage "axiom-gateway/internal/adapter/storage/postgres"
	redisStorage "axiom-gateway/internal/adapter/storage/redis"
	"axiom-gateway/internal/adapter/upstream"
	"axiom-gateway/internal/core/ports"
	"axiom-gateway/internal/service"
	"axiom-gateway/pkg/logger"
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
		Msg("Starting Axiom Gateway")

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
	serviceRepo := pgStorage.NewServiceRepo(pool)
	proofRepo := pgStorage.NewProofRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	callLogRepo := pgStorage.NewCallLogRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis fast-path replay guard
	proofGuard := redisStorage.NewProofGuard(rdb)

	// Escrow secret: raw hex or BIP39 mnemonic, normalized once.
	signingSecret, err := stacks.NormalizeSecret(cfg.Chain.EscrowSecretKey, cfg.Chain.EscrowMnemonic)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to normalize escrow secret")
	}

	// Chain client
	sigSvc := service.NewHMACSignatureService()
	chainClient := stacks.NewClient(stacks.Config{
		APIURL:         cfg.Chain.APIURL,
		FacilitatorURL: cfg.Chain.FacilitatorURL,
		CustodianURL:   cfg.Chain.CustodianURL,
		EscrowAddress:  cfg.Chain.EscrowAddress,
		SigningSecret:  signingSecret,
		Timeout:        cfg.Chain.VerifyTimeout,
	}, sigSvc, log)

	// Upstream delivery
	proxy := upstream.NewProxy(cfg.Gateway.UpstreamTimeout, log)

	// Settlement engine
	settlementSvc := service.NewSettlementService(
		serviceRepo,
		proofRepo,
		proofGuard,
		txRepo,
		callLogRepo,
		chainClient,
		proxy,
		transactor,
		service.SettlementConfig{
			FeePercent:    cfg.Gateway.FeePercent,
			EscrowAddress: cfg.Chain.EscrowAddress,
		},
		log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		SettlementSvc:  settlementSvc,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		FrontendURL:    cfg.Server.FrontendURL,
		MaxUploadBytes: cfg.Gateway.MaxUploadBytes,
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

	log.Info().Msg("Server exited")
}
