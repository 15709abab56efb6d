package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/api/middleware"
	"github.com/feral-file/brainrot-ledger/internal/api/server"
	"github.com/feral-file/brainrot-ledger/internal/api/shared/executor"
	"github.com/feral-file/brainrot-ledger/internal/block"
	"github.com/feral-file/brainrot-ledger/internal/burn"
	"github.com/feral-file/brainrot-ledger/internal/cases"
	"github.com/feral-file/brainrot-ledger/internal/config"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/market"
	"github.com/feral-file/brainrot-ledger/internal/randomness"
	"github.com/feral-file/brainrot-ledger/internal/store"
	"github.com/feral-file/brainrot-ledger/internal/upgrade"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "brainrot-api",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Brainrot API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize adapters
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Initialize randomness beacon
	beacon, closeBeacon, err := randomness.Open(ctx, randomness.Options{
		Mode:          cfg.Randomness.Mode,
		LocalSecret:   cfg.Randomness.LocalSecret,
		LocalInterval: cfg.Randomness.LocalInterval,
		RPCURL:        cfg.Ethereum.RPCURL,
		Block: block.Config{
			TTL:         cfg.Ethereum.BlockHeadTTL,
			StaleWindow: cfg.Ethereum.BlockHeadStaleWindow,
		},
	}, adapter.NewEthClientDialer(), clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize randomness beacon", zap.Error(err))
	}
	defer closeBeacon()

	// Initialize ledger and engines
	admin, err := cfg.Ledger.Admin()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid admin address", zap.Error(err))
	}
	engines, err := cfg.Ledger.EngineAddresses()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid engine addresses", zap.Error(err))
	}
	l := ledger.New(ledger.Config{
		Admin:           admin,
		MaxLevel:        cfg.Ledger.MaxLevel,
		MetadataBaseURI: cfg.Ledger.MetadataBaseURI,
	}, store.NewPGStore(db), clock, jsonAdapter)

	catalogue, err := cases.ParseCatalogue(map[domain.CaseType]cases.TierSpec{
		domain.CaseBronze: {Price: cfg.Cases.Bronze.Price, Weights: cfg.Cases.Bronze.Weights},
		domain.CaseSilver: {Price: cfg.Cases.Silver.Price, Weights: cfg.Cases.Silver.Weights},
		domain.CaseGold:   {Price: cfg.Cases.Gold.Price, Weights: cfg.Cases.Gold.Weights},
	})
	if err != nil {
		logger.FatalCtx(ctx, "Invalid case catalogue", zap.Error(err))
	}
	caseEngine := cases.NewEngine(l, beacon, cases.Config{
		Address:     engines["case_engine"],
		Catalogue:   catalogue,
		RevealDelay: cfg.Randomness.RevealDelay,
	}, clock)

	baseFee, perLevelFee, _ := cfg.Upgrade.Fees()
	gate := upgrade.NewGate(l, upgrade.Config{
		Address:     engines["upgrade_gate"],
		BaseFee:     baseFee,
		PerLevelFee: perLevelFee,
	})

	burner := burn.NewEngine(l, beacon, burn.Config{
		Address:         engines["burn_engine"],
		InputsPerRecipe: cfg.Burn.InputsPerRecipe,
	})

	marketplace := market.New(l, clock)

	// Initialize authentication
	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey:     cfg.Auth.JWTPublicKey,
		JWTIssuer:        cfg.Auth.JWTIssuer,
		SignatureMaxSkew: cfg.Auth.SignatureMaxSkew,
		ReplayCacheSize:  cfg.Auth.ReplayCacheSize,
	}, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize authentication", zap.Error(err))
	}

	// Create server config
	serverConfig := server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Auth.AllowedOrigins,
	}

	// Create and start server
	exec := executor.NewExecutor(l, caseEngine, gate, burner, marketplace)
	srv := server.New(serverConfig, exec, auth)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
