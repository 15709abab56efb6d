package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/block"
	"github.com/feral-file/brainrot-ledger/internal/cases"
	"github.com/feral-file/brainrot-ledger/internal/config"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/providers/jetstream"
	"github.com/feral-file/brainrot-ledger/internal/randomness"
	"github.com/feral-file/brainrot-ledger/internal/store"
	"github.com/feral-file/brainrot-ledger/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadSweeperConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "brainrot-sweeper",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Sweeper")

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

	// Initialize store and adapters
	dataStore := store.NewPGStore(db)
	clock := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	var sweepers []sweeper.Sweeper

	// Initialize the case reveal keeper
	if cfg.Keeper.Enabled {
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
		}, dataStore, clock, jsonAdapter)

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

		keeper := cfg.Keeper.Caller(admin)
		sweepers = append(sweepers, sweeper.NewCaseReveal(&sweeper.CaseRevealConfig{
			Keeper:         keeper,
			BatchSize:      cfg.Keeper.BatchSize,
			WorkerPoolSize: cfg.Keeper.Worker.WorkerPoolSize,
			Interval:       cfg.Keeper.Interval,
		}, caseEngine, clock))

		logger.InfoCtx(ctx, "Initialized case reveal keeper",
			logger.Address("keeper", keeper),
			zap.Int("batch_size", cfg.Keeper.BatchSize),
			zap.Duration("interval", cfg.Keeper.Interval),
		)
	}

	// Initialize the event relay
	if cfg.Relay.Enabled {
		publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			SubjectPrefix:   cfg.NATS.SubjectPrefix,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			DuplicateWindow: cfg.NATS.DuplicateWindow,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()

		sweepers = append(sweepers, sweeper.NewEventRelay(&sweeper.EventRelayConfig{
			BatchSize:      cfg.Relay.BatchSize,
			WorkerPoolSize: cfg.Relay.Worker.WorkerPoolSize,
			Interval:       cfg.Relay.Interval,
			MaxElapsed:     cfg.Relay.MaxElapsed,
		}, dataStore, publisher, clock))

		logger.InfoCtx(ctx, "Initialized event relay",
			zap.String("stream", cfg.NATS.StreamName),
			zap.Int("batch_size", cfg.Relay.BatchSize),
			zap.Int("worker_pool_size", cfg.Relay.Worker.WorkerPoolSize),
		)
	}

	if len(sweepers) == 0 {
		logger.WarnCtx(ctx, "No sweeper enabled, exiting")
		return
	}

	// Start the sweepers in goroutines
	errChan := make(chan error, len(sweepers))
	for _, s := range sweepers {
		go func(s sweeper.Sweeper) {
			if err := s.Start(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", s.Name(), err)
			}
		}(s)
	}

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweepers
	cancel()

	// Give the sweepers time to shut down gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	var wg sync.WaitGroup
	for _, s := range sweepers {
		wg.Add(1)
		go func(s sweeper.Sweeper) {
			defer wg.Done()
			if err := s.Stop(shutdownCtx); err != nil {
				logger.ErrorCtx(shutdownCtx, err, zap.String("sweeper", s.Name()))
			}
		}(s)
	}
	wg.Wait()

	logger.InfoCtx(shutdownCtx, "Sweeper stopped")
}
