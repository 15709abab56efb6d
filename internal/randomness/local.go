package randomness

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
)

const defaultLocalSecret = "brainrot-local-beacon"

// localBeacon derives one round per interval from a private secret. Rounds are
// counted from the unix epoch so heights survive restarts. Anyone holding the
// secret can predict every seed, so it is meant for development and single-operator setups.
type localBeacon struct {
	secret   common.Hash
	interval time.Duration
	clock    adapter.Clock
}

// NewLocalBeacon creates a beacon sealing a round every interval
func NewLocalBeacon(secret string, interval time.Duration, clock adapter.Clock) (Beacon, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("local beacon interval must be positive, got %s", interval)
	}
	if secret == "" {
		secret = defaultLocalSecret
	}
	return &localBeacon{
		secret:   crypto.Keccak256Hash([]byte(secret)),
		interval: interval,
		clock:    clock,
	}, nil
}

func (b *localBeacon) Height(_ context.Context) (uint64, error) {
	elapsed := b.clock.Now().UnixNano()
	if elapsed < 0 {
		return 0, nil
	}
	return uint64(elapsed / int64(b.interval)), nil //nolint:gosec,G115
}

func (b *localBeacon) FreshHeight(ctx context.Context) (uint64, error) {
	return b.Height(ctx)
}

func (b *localBeacon) Seed(ctx context.Context, height uint64) (common.Hash, error) {
	head, err := b.Height(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	if height > head {
		return common.Hash{}, fmt.Errorf("%w: round %d is ahead of %d", ErrNotSealed, height, head)
	}

	var round [8]byte
	binary.BigEndian.PutUint64(round[:], height)
	return crypto.Keccak256Hash(b.secret.Bytes(), round[:]), nil
}
