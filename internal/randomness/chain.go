package randomness

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/brainrot-ledger/internal/block"
)

// chainBeacon uses block hashes as round seeds. The block producer is the only party
// able to bias a hash and it learns nothing about which purchases commit to it.
type chainBeacon struct {
	provider block.BlockProvider
}

// NewChainBeacon creates a beacon backed by chain block hashes
func NewChainBeacon(provider block.BlockProvider) Beacon {
	return &chainBeacon{provider: provider}
}

func (b *chainBeacon) Height(ctx context.Context) (uint64, error) {
	return b.provider.GetLatestBlock(ctx)
}

func (b *chainBeacon) FreshHeight(ctx context.Context) (uint64, error) {
	return b.provider.RefreshLatestBlock(ctx)
}

func (b *chainBeacon) Seed(ctx context.Context, height uint64) (common.Hash, error) {
	head, err := b.provider.GetLatestBlock(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	if height > head {
		return common.Hash{}, fmt.Errorf("%w: block %d is ahead of head %d", ErrNotSealed, height, head)
	}
	return b.provider.GetBlockHash(ctx, height)
}
