package randomness

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/block"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/providers/ethereum"
)

const (
	MODE_CHAIN = "chain"
	MODE_LOCAL = "local"
)

// Options selects and configures a beacon
type Options struct {
	Mode string
	// LocalSecret and LocalInterval configure the local beacon
	LocalSecret   string
	LocalInterval time.Duration
	// RPCURL and Block configure the chain beacon
	RPCURL string
	Block  block.Config
}

// Open builds the beacon selected by opts. The returned func releases the chain connection.
func Open(ctx context.Context, opts Options, dialer adapter.EthClientDialer, clock adapter.Clock) (Beacon, func(), error) {
	switch opts.Mode {
	case MODE_LOCAL:
		beacon, err := NewLocalBeacon(opts.LocalSecret, opts.LocalInterval, clock)
		if err != nil {
			return nil, nil, err
		}
		logger.WarnCtx(ctx, "Using the local randomness beacon, seeds are predictable to whoever holds the secret",
			zap.Duration("interval", opts.LocalInterval))
		return beacon, func() {}, nil

	case MODE_CHAIN:
		client, err := dialer.Dial(ctx, opts.RPCURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to dial ethereum: %w", err)
		}
		provider := block.NewBlockProvider(ethereum.NewEthereumBlockFetcher(client), opts.Block, clock)
		logger.InfoCtx(ctx, "Using the chain randomness beacon",
			zap.Duration("head_ttl", opts.Block.TTL))
		return NewChainBeacon(provider), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown randomness mode: %q", opts.Mode)
	}
}
