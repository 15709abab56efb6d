package randomness

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrNotSealed is returned when the seed of a round that has not been produced yet is requested
var ErrNotSealed = errors.New("beacon round not sealed")

// Beacon is an external source of randomness organised in numbered rounds.
// A round's seed is fixed once the round is sealed and cannot be influenced by
// whoever commits to that round in advance, which is what case purchases do.
//
//go:generate mockgen -source=beacon.go -destination=../mocks/beacon.go -package=mocks -mock_names=Beacon=MockBeacon
type Beacon interface {
	// Height returns the latest sealed round, possibly from a short-lived cache
	Height(ctx context.Context) (uint64, error)

	// FreshHeight returns the latest sealed round read from the source itself.
	// Commitments to a future round must be taken relative to it.
	FreshHeight(ctx context.Context) (uint64, error)

	// Seed returns the seed of a sealed round, ErrNotSealed for a future one
	Seed(ctx context.Context, height uint64) (common.Hash, error)
}
