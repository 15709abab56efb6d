package randomness

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"slices"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/brainrot-ledger/internal/domain"
)

const (
	labelRarity = "rarity"
	labelMeme   = "meme"
	labelColor  = "color"
)

// Weight is one entry of a reward table
type Weight struct {
	Rarity domain.Rarity
	Weight uint64
}

// RewardTable is an ordered list of rarity weights, lowest tier first
type RewardTable []Weight

// Total returns the sum of all weights
func (t RewardTable) Total() uint64 {
	var total uint64
	for _, w := range t {
		total += w.Weight
	}
	return total
}

// Validate checks that the table is non-empty, ascending by rarity and free of zero weights
func (t RewardTable) Validate() error {
	if len(t) == 0 {
		return errors.New("reward table is empty")
	}
	for i, w := range t {
		if !w.Rarity.Valid() {
			return fmt.Errorf("invalid rarity %d", w.Rarity)
		}
		if w.Weight == 0 {
			return fmt.Errorf("zero weight for %s", w.Rarity)
		}
		if i > 0 && w.Rarity <= t[i-1].Rarity {
			return fmt.Errorf("rarity %s out of order", w.Rarity)
		}
	}
	return nil
}

// Cumulative returns the running weight totals in table order
func (t RewardTable) Cumulative() []uint64 {
	cum := make([]uint64, len(t))
	var running uint64
	for i, w := range t {
		running += w.Weight
		cum[i] = running
	}
	return cum
}

// PurchaseSeed binds a beacon seed to one purchase so purchases sharing a reveal round draw independently
func PurchaseSeed(beaconSeed common.Hash, purchaseID uint64) common.Hash {
	var id [8]byte
	binary.BigEndian.PutUint64(id[:], purchaseID)
	return crypto.Keccak256Hash(beaconSeed.Bytes(), id[:])
}

// RecipeSeed binds a beacon seed to a set of burned tokens. The ids are sorted first
// so the caller cannot steer the draw by reordering its inputs.
func RecipeSeed(beaconSeed common.Hash, tokenIDs []uint64) common.Hash {
	ids := slices.Clone(tokenIDs)
	slices.Sort(ids)

	data := make([]byte, 0, common.HashLength+8*len(ids))
	data = append(data, beaconSeed.Bytes()...)
	for _, id := range ids {
		data = binary.BigEndian.AppendUint64(data, id)
	}
	return crypto.Keccak256Hash(data)
}

// Draw derives an independent 256-bit value from seed for the given label
func Draw(seed common.Hash, label string) *big.Int {
	return new(big.Int).SetBytes(crypto.Keccak256(seed.Bytes(), []byte(label)))
}

// drawMod draws a value in [0, n)
func drawMod(seed common.Hash, label string, n uint64) uint64 {
	return new(big.Int).Mod(Draw(seed, label), new(big.Int).SetUint64(n)).Uint64()
}

// RollRarity samples a tier from the table. The roll r is uniform in [1, total] and
// selects the first tier whose cumulative weight reaches r, so a roll equal to a
// boundary belongs to the lower tier.
func RollRarity(seed common.Hash, table RewardTable) (domain.Rarity, error) {
	if err := table.Validate(); err != nil {
		return 0, err
	}

	roll := drawMod(seed, labelRarity, table.Total()) + 1
	return tierFor(roll, table), nil
}

func tierFor(roll uint64, table RewardTable) domain.Rarity {
	for i, cum := range table.Cumulative() {
		if roll <= cum {
			return table[i].Rarity
		}
	}
	return table[len(table)-1].Rarity
}

// PickMeme samples a meme uniformly from the pool of the given rarity
func PickMeme(seed common.Hash, rarity domain.Rarity) (domain.MemeType, error) {
	pool := domain.RarityPools[rarity]
	if len(pool) == 0 {
		return 0, fmt.Errorf("no meme pool for rarity %s", rarity)
	}
	return pool[drawMod(seed, labelMeme, uint64(len(pool)))], nil
}

// PickColor samples a color variant uniformly
func PickColor(seed common.Hash) uint8 {
	return uint8(drawMod(seed, labelColor, domain.COLOR_VARIANT_COUNT)) //nolint:gosec,G115
}

// Attributes samples the full attribute set of a token of a known rarity
func Attributes(seed common.Hash, rarity domain.Rarity) (domain.TokenAttributes, error) {
	meme, err := PickMeme(seed, rarity)
	if err != nil {
		return domain.TokenAttributes{}, err
	}
	return domain.TokenAttributes{
		MemeType:     meme,
		Rarity:       rarity,
		ColorVariant: PickColor(seed),
	}, nil
}
