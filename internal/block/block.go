package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/logger"
)

// BlockInfo represents cached block information
type BlockInfo struct {
	Number    uint64
	Timestamp time.Time
}

// BlockHashCache represents a cached hash for a specific block number
type BlockHashCache struct {
	Hash     common.Hash
	CachedAt time.Time
}

// BlockProvider provides cached access to the chain head and to block hashes.
// The keeper polls the head on every cycle and every open reads the hash of
// the reveal block, so both are cached to keep RPC usage flat.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider
type BlockProvider interface {
	// GetLatestBlock returns the latest block number, potentially from cache
	GetLatestBlock(ctx context.Context) (uint64, error)

	// RefreshLatestBlock fetches the latest block number from the chain, bypassing
	// the cache, and stores it. It never falls back to stale data.
	RefreshLatestBlock(ctx context.Context) (uint64, error)

	// GetBlockHash returns the hash of a given block number, potentially from cache
	GetBlockHash(ctx context.Context, blockNumber uint64) (common.Hash, error)
}

// BlockFetcher is the interface for fetching block information from the blockchain
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockFetcher=MockBlockFetcher
type BlockFetcher interface {
	// FetchLatestBlock fetches the latest block from the blockchain
	FetchLatestBlock(ctx context.Context) (uint64, error)

	// FetchBlockHash fetches the hash of a given block number
	FetchBlockHash(ctx context.Context, blockNumber uint64) (common.Hash, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TTL is how long to cache the block number
	TTL time.Duration

	// StaleWindow is how long to use stale data if fetching fails
	// If the cached data is older than this and fetch fails, return error
	StaleWindow time.Duration

	// BlockHashTTL is how long to cache block hashes.
	// Set to 0 to cache forever.
	BlockHashTTL time.Duration
}

// blockProvider implements BlockProvider with TTL-based caching
type blockProvider struct {
	fetcher BlockFetcher
	config  Config
	clock   adapter.Clock

	mu          sync.RWMutex
	blockInfo   *BlockInfo
	blockHashes map[uint64]*BlockHashCache
}

// NewBlockProvider creates a new BlockProvider with caching
func NewBlockProvider(fetcher BlockFetcher, config Config, clock adapter.Clock) BlockProvider {
	return &blockProvider{
		fetcher:     fetcher,
		config:      config,
		clock:       clock,
		blockHashes: make(map[uint64]*BlockHashCache),
	}
}

// GetLatestBlock returns the latest block number, using cache if valid
func (p *blockProvider) GetLatestBlock(ctx context.Context) (uint64, error) {
	p.mu.RLock()
	cached := p.blockInfo
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && now.Sub(cached.Timestamp) < p.config.TTL {
		logger.DebugCtx(ctx, "Using cached block number", zap.Uint64("block_number", cached.Number))
		return cached.Number, nil
	}

	blockNumber, err := p.fetchLatestBlock(ctx, now)
	if err != nil {
		if cached != nil && now.Sub(cached.Timestamp) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale block number", zap.Uint64("block_number", cached.Number))
			return cached.Number, nil
		}
		return 0, fmt.Errorf("failed to fetch latest block and no valid cache available: %w", err)
	}

	return blockNumber, nil
}

// RefreshLatestBlock fetches the latest block number and refreshes the cache
func (p *blockProvider) RefreshLatestBlock(ctx context.Context) (uint64, error) {
	blockNumber, err := p.fetchLatestBlock(ctx, p.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to fetch latest block: %w", err)
	}
	return blockNumber, nil
}

func (p *blockProvider) fetchLatestBlock(ctx context.Context, now time.Time) (uint64, error) {
	logger.DebugCtx(ctx, "Fetching latest block number from chain")
	blockNumber, err := p.fetcher.FetchLatestBlock(ctx)
	if err != nil {
		return 0, err
	}

	p.mu.Lock()
	p.blockInfo = &BlockInfo{
		Number:    blockNumber,
		Timestamp: now,
	}
	p.mu.Unlock()

	return blockNumber, nil
}

// GetBlockHash returns the hash of a given block number, using cache if valid
func (p *blockProvider) GetBlockHash(ctx context.Context, blockNumber uint64) (common.Hash, error) {
	p.mu.RLock()
	cached := p.blockHashes[blockNumber]
	p.mu.RUnlock()

	now := p.clock.Now()

	if cached != nil && (p.config.BlockHashTTL == 0 || now.Sub(cached.CachedAt) < p.config.BlockHashTTL) {
		logger.DebugCtx(ctx, "Using cached block hash",
			zap.Uint64("block_number", blockNumber),
			zap.String("hash", cached.Hash.Hex()))
		return cached.Hash, nil
	}

	logger.DebugCtx(ctx, "Fetching block hash from chain", zap.Uint64("block_number", blockNumber))
	hash, err := p.fetcher.FetchBlockHash(ctx, blockNumber)
	if err != nil {
		if cached != nil && now.Sub(cached.CachedAt) < p.config.StaleWindow {
			logger.DebugCtx(ctx, "Using stale block hash",
				zap.Uint64("block_number", blockNumber),
				zap.String("hash", cached.Hash.Hex()))
			return cached.Hash, nil
		}
		return common.Hash{}, fmt.Errorf("failed to fetch block hash for block %d and no valid cache available: %w", blockNumber, err)
	}

	p.mu.Lock()
	p.blockHashes[blockNumber] = &BlockHashCache{
		Hash:     hash,
		CachedAt: now,
	}
	p.mu.Unlock()

	return hash, nil
}
