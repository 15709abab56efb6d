package burn_test

import (
	"context"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/burn"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/mocks"
	"github.com/feral-file/brainrot-ledger/internal/store"
)

var (
	admin    = common.HexToAddress("0xad")
	minter   = common.HexToAddress("0xc1")
	burnAddr = common.HexToAddress("0xb1")
	alice    = common.HexToAddress("0xa1")
	bob      = common.HexToAddress("0xb0")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testBurnEngine struct {
	ctrl   *gomock.Controller
	beacon *mocks.MockBeacon
	ledger *ledger.Ledger
	engine *burn.Engine
}

func setupTest(t *testing.T) *testBurnEngine {
	ctrl := gomock.NewController(t)
	ctx := context.Background()

	tb := &testBurnEngine{
		ctrl:   ctrl,
		beacon: mocks.NewMockBeacon(ctrl),
		ledger: ledger.New(ledger.Config{Admin: admin, MaxLevel: 100}, store.NewMemoryStore(), adapter.NewClock(), adapter.NewJSON()),
	}
	tb.engine = burn.NewEngine(tb.ledger, tb.beacon, burn.Config{Address: burnAddr, InputsPerRecipe: 3})

	tb.beacon.EXPECT().Height(gomock.Any()).Return(uint64(50), nil).AnyTimes()
	tb.beacon.EXPECT().Seed(gomock.Any(), uint64(50)).Return(common.HexToHash("0x5eed"), nil).AnyTimes()

	require.NoError(t, tb.ledger.SetAuthorizedMinter(ctx, admin, minter, true))
	require.NoError(t, tb.ledger.SetAuthorizedMinter(ctx, admin, burnAddr, true))
	return tb
}

func tearDownTest(tb *testBurnEngine) {
	tb.ctrl.Finish()
}

func (tb *testBurnEngine) mint(t *testing.T, to common.Address, rarity domain.Rarity, level uint32) uint64 {
	t.Helper()
	ctx := context.Background()
	token, err := tb.ledger.Mint(ctx, minter, to, domain.TokenAttributes{MemeType: domain.RarityPools[rarity][0], Rarity: rarity})
	require.NoError(t, err)
	if level > 1 {
		require.NoError(t, tb.ledger.Update(ctx, func(s *ledger.Session) error {
			return s.SetLevel(ctx, minter, token.ID, level)
		}))
	}
	return token.ID
}

func TestBurnForUpgrade(t *testing.T) {
	tb := setupTest(t)
	defer tearDownTest(tb)
	ctx := context.Background()

	ids := []uint64{
		tb.mint(t, alice, domain.RarityCommon, 1),
		tb.mint(t, alice, domain.RarityCommon, 7),
		tb.mint(t, alice, domain.RarityCommon, 3),
	}
	keep := tb.mint(t, alice, domain.RarityRare, 1)

	token, err := tb.engine.BurnForUpgrade(ctx, domain.NewCall(alice), ids)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), token.ID)
	assert.Equal(t, alice, token.Owner)
	assert.Equal(t, domain.RarityRare, token.Rarity)
	assert.Contains(t, domain.RarityPools[domain.RarityRare], token.MemeType)
	assert.Equal(t, uint32(7), token.Level)

	for _, id := range ids {
		_, err := tb.ledger.OwnerOf(ctx, id)
		assert.ErrorIs(t, err, domain.ErrNonexistentToken)
	}

	owned, err := tb.ledger.TokensOfOwner(ctx, alice)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{keep, token.ID}, owned)
}

func TestBurnForUpgrade_InvalidRecipes(t *testing.T) {
	tb := setupTest(t)
	defer tearDownTest(tb)
	ctx := context.Background()

	c1 := tb.mint(t, alice, domain.RarityCommon, 1)
	c2 := tb.mint(t, alice, domain.RarityCommon, 1)
	c3 := tb.mint(t, alice, domain.RarityCommon, 1)
	r1 := tb.mint(t, alice, domain.RarityRare, 1)
	l1 := tb.mint(t, alice, domain.RarityLegendary, 1)
	l2 := tb.mint(t, alice, domain.RarityLegendary, 1)
	l3 := tb.mint(t, alice, domain.RarityLegendary, 1)
	foreign := tb.mint(t, bob, domain.RarityCommon, 1)

	tests := []struct {
		name string
		ids  []uint64
		want error
	}{
		{"too few", []uint64{c1, c2}, domain.ErrInvalidRecipe},
		{"too many", []uint64{c1, c2, c3, r1}, domain.ErrInvalidRecipe},
		{"duplicate", []uint64{c1, c1, c2}, domain.ErrInvalidRecipe},
		{"mixed rarity", []uint64{c1, c2, r1}, domain.ErrInvalidRecipe},
		{"legendary", []uint64{l1, l2, l3}, domain.ErrInvalidRecipe},
		{"not owner", []uint64{c1, c2, foreign}, domain.ErrNotTokenOwner},
		{"burned or missing", []uint64{c1, c2, 999}, domain.ErrNonexistentToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tb.engine.BurnForUpgrade(ctx, domain.NewCall(alice), tt.ids)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// nothing was burned by the failed attempts
	owned, err := tb.ledger.TokensOfOwner(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, owned, 7)
}

func TestBurnForUpgrade_AtomicWhenMintFails(t *testing.T) {
	tb := setupTest(t)
	defer tearDownTest(tb)
	ctx := context.Background()

	ids := []uint64{
		tb.mint(t, alice, domain.RarityEpic, 1),
		tb.mint(t, alice, domain.RarityEpic, 1),
		tb.mint(t, alice, domain.RarityEpic, 1),
	}
	require.NoError(t, tb.ledger.SetAuthorizedMinter(ctx, admin, burnAddr, false))

	_, err := tb.engine.BurnForUpgrade(ctx, domain.NewCall(alice), ids)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// no partial burn
	for _, id := range ids {
		owner, err := tb.ledger.OwnerOf(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, alice, owner)
	}
}

func TestBurnForUpgrade_InputOrderDoesNotMatter(t *testing.T) {
	first := setupTest(t)
	defer tearDownTest(first)
	second := setupTest(t)
	defer tearDownTest(second)
	ctx := context.Background()

	var results []*domain.Token
	for i, tb := range []*testBurnEngine{first, second} {
		ids := []uint64{
			tb.mint(t, alice, domain.RarityRare, 1),
			tb.mint(t, alice, domain.RarityRare, 1),
			tb.mint(t, alice, domain.RarityRare, 1),
		}
		if i == 1 {
			ids[0], ids[2] = ids[2], ids[0]
		}
		token, err := tb.engine.BurnForUpgrade(ctx, domain.NewCall(alice), ids)
		require.NoError(t, err)
		results = append(results, token)
	}

	assert.Equal(t, results[0].Metadata(), results[1].Metadata())
}
