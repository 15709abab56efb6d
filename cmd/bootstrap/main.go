package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/brainrot-ledger/db"
	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/config"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	skipSchema = flag.Bool("skip-schema", false, "Do not apply the database schema")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadBootstrapConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	err = logger.Initialize(logger.Config{
		Service:   "brainrot-bootstrap",
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	// Connect to database
	gdb, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	if !*skipSchema {
		if err := db.Migrate(ctx, gdb); err != nil {
			logger.FatalCtx(ctx, "Failed to apply schema", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Applied database schema")
	}

	admin, err := cfg.Ledger.Admin()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid admin address", zap.Error(err))
	}
	engines, err := cfg.Ledger.EngineAddresses()
	if err != nil {
		logger.FatalCtx(ctx, "Invalid engine addresses", zap.Error(err))
	}

	l := ledger.New(ledger.Config{
		Admin:    admin,
		MaxLevel: cfg.Ledger.MaxLevel,
	}, store.NewPGStore(gdb), adapter.NewClock(), adapter.NewJSON())

	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)

	// Authorizing an already authorized address is a no-op, so reruns are safe
	for _, name := range names {
		addr := engines[name]
		if err := l.SetAuthorizedMinter(ctx, admin, addr, true); err != nil {
			logger.FatalCtx(ctx, "Failed to authorize engine", zap.Error(err), zap.String("engine", name))
		}
		logger.InfoCtx(ctx, "Authorized engine", zap.String("engine", name), logger.Address("address", addr))
	}

	if len(names) == 0 {
		logger.WarnCtx(ctx, "No engine address configured, nothing to authorize")
	}
	logger.InfoCtx(ctx, "Bootstrap complete", logger.Address("admin", admin))
}
