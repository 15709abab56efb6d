package cases_test

import (
	"context"
	"encoding/binary"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/block"
	"github.com/feral-file/brainrot-ledger/internal/cases"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/mocks"
	"github.com/feral-file/brainrot-ledger/internal/randomness"
	"github.com/feral-file/brainrot-ledger/internal/store"
)

var (
	admin  = common.HexToAddress("0xad")
	engine = common.HexToAddress("0xc1")
	alice  = common.HexToAddress("0xa1")
	keeper = common.HexToAddress("0xee")
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// testCaseEngine wires a case engine to an in-memory ledger and a mock beacon
type testCaseEngine struct {
	ctrl   *gomock.Controller
	beacon *mocks.MockBeacon
	ledger *ledger.Ledger
	engine *cases.Engine
	height uint64
}

func setupTest(t *testing.T) *testCaseEngine {
	ctrl := gomock.NewController(t)
	tc := &testCaseEngine{
		ctrl:   ctrl,
		beacon: mocks.NewMockBeacon(ctrl),
		height: 100,
	}

	tc.ledger = ledger.New(ledger.Config{Admin: admin, MaxLevel: 100}, store.NewMemoryStore(), adapter.NewClock(), adapter.NewJSON())
	tc.engine = cases.NewEngine(tc.ledger, tc.beacon, cases.Config{
		Address:     engine,
		Catalogue:   cases.DefaultCatalogue(),
		RevealDelay: 2,
	}, adapter.NewClock())

	tc.beacon.EXPECT().Height(gomock.Any()).DoAndReturn(func(context.Context) (uint64, error) {
		return tc.height, nil
	}).AnyTimes()
	tc.beacon.EXPECT().FreshHeight(gomock.Any()).DoAndReturn(func(context.Context) (uint64, error) {
		return tc.height, nil
	}).AnyTimes()
	tc.beacon.EXPECT().Seed(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h uint64) (common.Hash, error) {
		if h > tc.height {
			return common.Hash{}, randomness.ErrNotSealed
		}
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], h)
		return crypto.Keccak256Hash(b[:]), nil
	}).AnyTimes()

	ctx := context.Background()
	require.NoError(t, tc.ledger.SetAuthorizedMinter(ctx, admin, engine, true))
	require.NoError(t, tc.ledger.Deposit(ctx, admin, alice, big.NewInt(0).Mul(domain.Ether, big.NewInt(20))))
	return tc
}

func tearDownTest(tc *testCaseEngine) {
	tc.ctrl.Finish()
}

func balance(t *testing.T, l *ledger.Ledger, addr common.Address) *big.Int {
	t.Helper()
	b, err := l.BalanceOf(context.Background(), addr)
	require.NoError(t, err)
	return b
}

func TestCatalogue(t *testing.T) {
	tc := setupTest(t)
	defer tearDownTest(tc)

	tiers := tc.engine.Catalogue()
	require.Len(t, tiers, 3)
	assert.Equal(t, domain.CaseBronze, tiers[0].Type)
	assert.Equal(t, "500000000000000", tiers[0].Price.String())
	assert.Equal(t, domain.CaseSilver, tiers[1].Type)
	assert.Equal(t, uint64(100), tiers[1].Table.Total())
	assert.Equal(t, domain.CaseGold, tiers[2].Type)
	assert.Equal(t, domain.MilliEther(10), tiers[2].Price)
}

func TestParseTier(t *testing.T) {
	tier, err := cases.ParseTier(domain.CaseSilver, "2000000000000000", map[string]uint64{
		"legendary": 5,
		"rare":      70,
		"epic":      25,
		"common":    0,
	})
	require.NoError(t, err)
	assert.Equal(t, randomness.RewardTable{
		{Rarity: domain.RarityRare, Weight: 70},
		{Rarity: domain.RarityEpic, Weight: 25},
		{Rarity: domain.RarityLegendary, Weight: 5},
	}, tier.Table)

	_, err = cases.ParseTier(domain.CaseGold, "0", map[string]uint64{"epic": 1})
	assert.Error(t, err)
	_, err = cases.ParseTier(domain.CaseGold, "1", map[string]uint64{"mythic": 1})
	assert.Error(t, err)
	_, err = cases.ParseTier(domain.CaseGold, "1", map[string]uint64{})
	assert.Error(t, err)
}

func TestParseCatalogue(t *testing.T) {
	catalogue, err := cases.ParseCatalogue(map[domain.CaseType]cases.TierSpec{
		domain.CaseGold:   {Price: "10000000000000000", Weights: map[string]uint64{"epic": 60, "legendary": 40}},
		domain.CaseBronze: {Price: "500000000000000", Weights: map[string]uint64{"common": 80, "rare": 20}},
	})
	require.NoError(t, err)

	tiers := catalogue.Tiers()
	require.Len(t, tiers, 2)
	assert.Equal(t, domain.CaseBronze, tiers[0].Type)
	assert.Equal(t, domain.CaseGold, tiers[1].Type)
	assert.Equal(t, domain.MilliEther(10).String(), tiers[1].Price.String())

	_, err = cases.ParseCatalogue(nil)
	assert.Error(t, err)
	_, err = cases.ParseCatalogue(map[domain.CaseType]cases.TierSpec{
		domain.CaseSilver: {Price: "-1", Weights: map[string]uint64{"rare": 1}},
	})
	assert.Error(t, err)
}

func TestBuyCase(t *testing.T) {
	tc := setupTest(t)
	defer tearDownTest(tc)
	ctx := context.Background()

	paid := new(big.Int).Add(domain.MilliEther(10), big.NewInt(1))
	purchase, err := tc.engine.BuyCase(ctx, domain.NewCall(alice).WithValue(paid), domain.CaseGold)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), purchase.ID)
	assert.Equal(t, alice, purchase.Buyer)
	assert.Equal(t, domain.PurchaseStatusPending, purchase.Status)
	assert.Equal(t, uint64(102), purchase.RevealHeight)
	assert.Equal(t, paid, purchase.Paid)

	// the excess is kept by the engine
	assert.Equal(t, paid, balance(t, tc.ledger, engine))
}

func TestBuyCase_Rejections(t *testing.T) {
	tc := setupTest(t)
	defer tearDownTest(tc)
	ctx := context.Background()
	before := balance(t, tc.ledger, alice)

	_, err := tc.engine.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(10)), domain.CaseType("diamond"))
	assert.ErrorIs(t, err, domain.ErrUnknownCaseType)

	_, err = tc.engine.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(1)), domain.CaseGold)
	assert.ErrorIs(t, err, domain.ErrInsufficientPayment)

	_, err = tc.engine.BuyCase(ctx, domain.NewCall(keeper).WithValue(domain.MilliEther(10)), domain.CaseGold)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	assert.Equal(t, before, balance(t, tc.ledger, alice))
	assert.Equal(t, 0, balance(t, tc.ledger, engine).Sign())

	purchases, err := tc.engine.PurchasesOf(ctx, alice, 10)
	require.NoError(t, err)
	assert.Empty(t, purchases)
}

func TestBuyCase_MinimumRevealDelay(t *testing.T) {
	tc := setupTest(t)
	defer tearDownTest(tc)
	ctx := context.Background()

	short := cases.NewEngine(tc.ledger, tc.beacon, cases.Config{Address: engine, RevealDelay: 1}, adapter.NewClock())
	purchase, err := short.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(10)), domain.CaseGold)
	require.NoError(t, err)
	assert.Equal(t, tc.height+cases.MIN_REVEAL_DELAY, purchase.RevealHeight)
}

func TestBuyCase_StaleHeadCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	ctx := context.Background()

	fetcher := mocks.NewMockBlockFetcher(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Unix(1_700_000_000, 0)
	head := uint64(100)
	clock.EXPECT().Now().DoAndReturn(func() time.Time { return now }).AnyTimes()
	fetcher.EXPECT().FetchLatestBlock(gomock.Any()).DoAndReturn(func(context.Context) (uint64, error) {
		return head, nil
	}).AnyTimes()
	fetcher.EXPECT().FetchBlockHash(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, n uint64) (common.Hash, error) {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], n)
		return crypto.Keccak256Hash(b[:]), nil
	}).AnyTimes()

	provider := block.NewBlockProvider(fetcher, block.Config{TTL: 12 * time.Second, StaleWindow: time.Minute}, clock)
	beacon := randomness.NewChainBeacon(provider)

	l := ledger.New(ledger.Config{Admin: admin, MaxLevel: 100}, store.NewMemoryStore(), adapter.NewClock(), adapter.NewJSON())
	require.NoError(t, l.SetAuthorizedMinter(ctx, admin, engine, true))
	require.NoError(t, l.Deposit(ctx, admin, alice, domain.MilliEther(10)))
	e := cases.NewEngine(l, beacon, cases.Config{Address: engine, RevealDelay: 1}, adapter.NewClock())

	// warm the head cache, then let the chain move on within the TTL
	cached, err := beacon.Height(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(100), cached)
	head = 101
	now = now.Add(11 * time.Second)

	purchase, err := e.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(10)), domain.CaseGold)
	require.NoError(t, err)
	assert.Equal(t, uint64(103), purchase.RevealHeight)
	assert.Greater(t, purchase.RevealHeight, head)

	// the committed block is not public yet
	_, err = e.OpenCase(ctx, domain.NewCall(alice), purchase.ID)
	assert.ErrorIs(t, err, domain.ErrPurchaseNotReady)

	head = 103
	now = now.Add(time.Minute)
	token, err := e.OpenCase(ctx, domain.NewCall(alice), purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, token.Owner)
}

func TestOpenCase(t *testing.T) {
	tc := setupTest(t)
	defer tearDownTest(tc)
	ctx := context.Background()

	purchase, err := tc.engine.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(10)), domain.CaseGold)
	require.NoError(t, err)

	// the reveal round is not sealed yet
	_, err = tc.engine.OpenCase(ctx, domain.NewCall(alice), purchase.ID)
	assert.ErrorIs(t, err, domain.ErrPurchaseNotReady)

	pending, err := tc.engine.PendingPurchases(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	tc.height = 102
	pending, err = tc.engine.PendingPurchases(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, purchase.ID, pending[0].ID)
	pending, err = tc.engine.PendingPurchases(ctx, purchase.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// anyone may open, the buyer receives the token
	token, err := tc.engine.OpenCase(ctx, domain.NewCall(keeper), purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, token.Owner)
	assert.Contains(t, []domain.Rarity{domain.RarityEpic, domain.RarityLegendary}, token.Rarity)
	assert.Contains(t, domain.RarityPools[token.Rarity], token.MemeType)
	assert.Equal(t, uint32(1), token.Level)

	opened, err := tc.engine.GetPurchase(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusOpened, opened.Status)
	require.NotNil(t, opened.TokenID)
	assert.Equal(t, token.ID, *opened.TokenID)

	// exactly once
	_, err = tc.engine.OpenCase(ctx, domain.NewCall(alice), purchase.ID)
	assert.ErrorIs(t, err, domain.ErrUnknownPurchase)
	_, err = tc.engine.OpenCase(ctx, domain.NewCall(alice), 99)
	assert.ErrorIs(t, err, domain.ErrUnknownPurchase)

	owned, err := tc.ledger.TokensOfOwner(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{token.ID}, owned)
}

func TestOpenCase_EngineNotAuthorized(t *testing.T) {
	tc := setupTest(t)
	defer tearDownTest(tc)
	ctx := context.Background()

	purchase, err := tc.engine.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(2)), domain.CaseSilver)
	require.NoError(t, err)
	tc.height = 200

	require.NoError(t, tc.ledger.SetAuthorizedMinter(ctx, admin, engine, false))
	_, err = tc.engine.OpenCase(ctx, domain.NewCall(alice), purchase.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// the purchase stays resolvable
	got, err := tc.engine.GetPurchase(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseStatusPending, got.Status)

	require.NoError(t, tc.ledger.SetAuthorizedMinter(ctx, admin, engine, true))
	_, err = tc.engine.OpenCase(ctx, domain.NewCall(alice), purchase.ID)
	require.NoError(t, err)
}

func TestOpenCase_Deterministic(t *testing.T) {
	first := setupTest(t)
	defer tearDownTest(first)
	second := setupTest(t)
	defer tearDownTest(second)
	ctx := context.Background()

	var tokens []*domain.Token
	for _, tc := range []*testCaseEngine{first, second} {
		purchase, err := tc.engine.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(10)), domain.CaseGold)
		require.NoError(t, err)
		tc.height = 150
		token, err := tc.engine.OpenCase(ctx, domain.NewCall(alice), purchase.ID)
		require.NoError(t, err)
		tokens = append(tokens, token)
	}

	assert.Equal(t, tokens[0].Metadata(), tokens[1].Metadata())
}

func TestOpenCase_GoldDistribution(t *testing.T) {
	tc := setupTest(t)
	defer tearDownTest(tc)
	ctx := context.Background()

	const trials = 1000
	ids := make([]uint64, 0, trials)
	for range trials {
		purchase, err := tc.engine.BuyCase(ctx, domain.NewCall(alice).WithValue(domain.MilliEther(10)), domain.CaseGold)
		require.NoError(t, err)
		ids = append(ids, purchase.ID)
	}

	tc.height = 1_000
	counts := make(map[domain.Rarity]int)
	for _, id := range ids {
		token, err := tc.engine.OpenCase(ctx, domain.NewCall(alice), id)
		require.NoError(t, err)
		counts[token.Rarity]++
	}

	assert.Len(t, counts, 2)
	assert.InDelta(t, 600, counts[domain.RarityEpic], 75)
	assert.InDelta(t, 400, counts[domain.RarityLegendary], 75)
	assert.Equal(t, new(big.Int).Mul(domain.MilliEther(10), big.NewInt(trials)), balance(t, tc.ledger, engine))
}
