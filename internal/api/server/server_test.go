package server_test

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/api/middleware"
	"github.com/feral-file/brainrot-ledger/internal/api/server"
	"github.com/feral-file/brainrot-ledger/internal/api/shared/dto"
	"github.com/feral-file/brainrot-ledger/internal/api/shared/executor"
	"github.com/feral-file/brainrot-ledger/internal/burn"
	"github.com/feral-file/brainrot-ledger/internal/cases"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/market"
	"github.com/feral-file/brainrot-ledger/internal/mocks"
	"github.com/feral-file/brainrot-ledger/internal/randomness"
	"github.com/feral-file/brainrot-ledger/internal/store"
	"github.com/feral-file/brainrot-ledger/internal/upgrade"
)

var (
	caseEngineAddress = common.HexToAddress("0xc1")
	gateAddress       = common.HexToAddress("0xc2")
	burnEngineAddress = common.HexToAddress("0xc3")

	now = time.Unix(1_800_000_000, 0)
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newWallet(t *testing.T) wallet {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return wallet{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// testServer runs the API over an in-memory ledger and a mock beacon
type testServer struct {
	ctrl   *gomock.Controller
	beacon *mocks.MockBeacon
	clock  *mocks.MockClock
	ledger *ledger.Ledger
	router *gin.Engine
	height uint64
	nonce  int64

	admin, alice, bob, keeper wallet
}

func setupTest(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)
	ts := &testServer{
		ctrl:   ctrl,
		beacon: mocks.NewMockBeacon(ctrl),
		clock:  mocks.NewMockClock(ctrl),
		height: 100,
		admin:  newWallet(t),
		alice:  newWallet(t),
		bob:    newWallet(t),
		keeper: newWallet(t),
	}

	ts.beacon.EXPECT().Height(gomock.Any()).DoAndReturn(func(context.Context) (uint64, error) {
		return ts.height, nil
	}).AnyTimes()
	ts.beacon.EXPECT().FreshHeight(gomock.Any()).DoAndReturn(func(context.Context) (uint64, error) {
		return ts.height, nil
	}).AnyTimes()
	ts.beacon.EXPECT().Seed(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, h uint64) (common.Hash, error) {
		if h > ts.height {
			return common.Hash{}, randomness.ErrNotSealed
		}
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], h)
		return crypto.Keccak256Hash(b[:]), nil
	}).AnyTimes()
	ts.clock.EXPECT().Now().Return(now).AnyTimes()

	ts.ledger = ledger.New(ledger.Config{Admin: ts.admin.address, MaxLevel: 100}, store.NewMemoryStore(), adapter.NewClock(), adapter.NewJSON())
	caseEngine := cases.NewEngine(ts.ledger, ts.beacon, cases.Config{
		Address:     caseEngineAddress,
		Catalogue:   cases.DefaultCatalogue(),
		RevealDelay: 2,
	}, adapter.NewClock())
	gate := upgrade.NewGate(ts.ledger, upgrade.Config{
		Address:     gateAddress,
		BaseFee:     domain.MilliEther(1),
		PerLevelFee: domain.MilliEther(1),
	})
	burner := burn.NewEngine(ts.ledger, ts.beacon, burn.Config{Address: burnEngineAddress, InputsPerRecipe: 3})
	marketplace := market.New(ts.ledger, adapter.NewClock())

	ctx := context.Background()
	for _, addr := range []common.Address{caseEngineAddress, gateAddress, burnEngineAddress} {
		require.NoError(t, ts.ledger.SetAuthorizedMinter(ctx, ts.admin.address, addr, true))
	}

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{}, ts.clock)
	require.NoError(t, err)

	exec := executor.NewExecutor(ts.ledger, caseEngine, gate, burner, marketplace)
	ts.router = server.New(server.Config{}, exec, auth).Router()
	return ts
}

func tearDownTest(ts *testServer) {
	ts.ctrl.Finish()
}

// call sends a request, signing it when a wallet is given
func (ts *testServer) call(t *testing.T, w *wallet, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if w != nil {
		// every request gets its own timestamp so identical requests sign differently
		ts.nonce++
		timestamp := strconv.FormatInt(now.Unix()+ts.nonce, 10)
		msg := middleware.SigningMessage(method, req.URL.Path, timestamp, []byte(body))
		sig, err := crypto.Sign(accounts.TextHash([]byte(msg)), w.key)
		require.NoError(t, err)

		req.Header.Set(middleware.WALLET_ADDRESS_HEADER, w.address.Hex())
		req.Header.Set(middleware.WALLET_TIMESTAMP_HEADER, timestamp)
		req.Header.Set(middleware.WALLET_SIGNATURE_HEADER, hexutil.Encode(sig))
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (ts *testServer) deposit(t *testing.T, to common.Address, amount *big.Int) {
	t.Helper()
	rec := ts.call(t, &ts.admin, http.MethodPost, "/api/v1/admin/deposits",
		fmt.Sprintf(`{"address":%q,"amount":%q}`, to.Hex(), amount.String()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHealthCheck(t *testing.T) {
	ts := setupTest(t)
	defer tearDownTest(ts)

	rec := ts.call(t, nil, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.REQUEST_ID_HEADER))
}

func TestAdministration(t *testing.T) {
	ts := setupTest(t)
	defer tearDownTest(ts)

	ts.deposit(t, ts.alice.address, domain.Ether)

	account := decode[dto.AccountResponse](t, ts.call(t, nil, http.MethodGet, "/api/v1/accounts/"+ts.alice.address.Hex(), ""))
	assert.Equal(t, domain.Ether.String(), account.BalanceWei)
	assert.False(t, account.Authorized)

	// only the administrator moves funds or changes authorization
	rec := ts.call(t, &ts.alice, http.MethodPost, "/api/v1/admin/deposits",
		fmt.Sprintf(`{"address":%q,"amount":"1"}`, ts.alice.address.Hex()))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.call(t, &ts.alice, http.MethodPut, "/api/v1/admin/minters/"+ts.alice.address.Hex(), `{"authorized":true}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.call(t, &ts.admin, http.MethodPut, "/api/v1/admin/minters/"+ts.keeper.address.Hex(), `{"authorized":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	minters := decode[dto.MinterListResponse](t, ts.call(t, nil, http.MethodGet, "/api/v1/admin/minters", ""))
	assert.Contains(t, minters.Minters, ts.keeper.address.Hex())
	assert.Contains(t, minters.Minters, caseEngineAddress.Hex())

	rec = ts.call(t, &ts.admin, http.MethodPost, "/api/v1/admin/withdrawals",
		fmt.Sprintf(`{"from":%q,"to":%q,"amount":%q}`, ts.alice.address.Hex(), ts.admin.address.Hex(), domain.MilliEther(1).String()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	account = decode[dto.AccountResponse](t, rec)
	assert.Equal(t, ts.alice.address.Hex(), account.Address)
	assert.Equal(t, domain.MilliEther(999).String(), account.BalanceWei)

	rec = ts.call(t, &ts.admin, http.MethodPost, "/api/v1/admin/withdrawals",
		fmt.Sprintf(`{"from":%q,"to":%q,"amount":%q}`, ts.alice.address.Hex(), ts.admin.address.Hex(), domain.Ether.String()))
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
}

func TestCaseToMarketplace(t *testing.T) {
	ts := setupTest(t)
	defer tearDownTest(ts)

	ts.deposit(t, ts.alice.address, domain.Ether)

	// unsigned writes are rejected before touching the ledger
	rec := ts.call(t, nil, http.MethodPost, "/api/v1/cases/purchases", `{"case_type":"gold","value":"1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.call(t, &ts.alice, http.MethodPost, "/api/v1/cases/purchases",
		fmt.Sprintf(`{"case_type":"gold","value":%q}`, domain.MilliEther(10).String()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	purchase := decode[dto.CasePurchaseResponse](t, rec)
	assert.Equal(t, ts.alice.address.Hex(), purchase.Buyer)
	assert.Equal(t, uint64(102), purchase.RevealHeight)
	assert.Equal(t, string(domain.PurchaseStatusPending), purchase.Status)

	openPath := fmt.Sprintf("/api/v1/cases/purchases/%d/open", purchase.ID)
	rec = ts.call(t, &ts.keeper, http.MethodPost, openPath, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// anyone may open once the reveal round is sealed; the buyer receives the token
	ts.height = 102
	rec = ts.call(t, &ts.keeper, http.MethodPost, openPath, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	opened := decode[dto.CaseOpenResponse](t, rec)
	require.NotNil(t, opened.Token)
	assert.Equal(t, ts.alice.address.Hex(), opened.Token.Owner)
	assert.Equal(t, uint32(1), opened.Token.Level)
	tokenID := opened.Token.ID

	rec = ts.call(t, &ts.keeper, http.MethodPost, openPath, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	purchase = decode[dto.CasePurchaseResponse](t, ts.call(t, nil, http.MethodGet, fmt.Sprintf("/api/v1/cases/purchases/%d", purchase.ID), ""))
	assert.Equal(t, string(domain.PurchaseStatusOpened), purchase.Status)
	require.NotNil(t, purchase.TokenID)
	assert.Equal(t, tokenID, *purchase.TokenID)

	rec = ts.call(t, &ts.alice, http.MethodPost, "/api/v1/marketplace/listings",
		fmt.Sprintf(`{"token_id":%d,"price":%q}`, tokenID, domain.MilliEther(5).String()))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	listings := decode[dto.ListingListResponse](t, ts.call(t, nil, http.MethodGet, "/api/v1/marketplace/listings?seller="+ts.alice.address.Hex(), ""))
	require.Len(t, listings.Listings, 1)
	assert.Equal(t, tokenID, listings.Listings[0].TokenID)

	buyPath := fmt.Sprintf("/api/v1/marketplace/listings/%d/buy", tokenID)
	body := fmt.Sprintf(`{"value":%q}`, domain.MilliEther(5).String())

	rec = ts.call(t, &ts.alice, http.MethodPost, buyPath, body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.call(t, &ts.bob, http.MethodPost, buyPath, body)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	ts.deposit(t, ts.bob.address, domain.Ether)
	rec = ts.call(t, &ts.bob, http.MethodPost, buyPath, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := decode[dto.TokenResponse](t, ts.call(t, nil, http.MethodGet, fmt.Sprintf("/api/v1/tokens/%d", tokenID), ""))
	assert.Equal(t, ts.bob.address.Hex(), token.Owner)

	alice := decode[dto.AccountResponse](t, ts.call(t, nil, http.MethodGet, "/api/v1/accounts/"+ts.alice.address.Hex(), ""))
	assert.Equal(t, domain.MilliEther(995).String(), alice.BalanceWei)
	assert.Equal(t, 0, alice.TokenCount)

	listings = decode[dto.ListingListResponse](t, ts.call(t, nil, http.MethodGet, "/api/v1/marketplace/listings", ""))
	assert.Empty(t, listings.Listings)

	owned := decode[dto.OwnerTokensResponse](t, ts.call(t, nil, http.MethodGet, "/api/v1/owners/"+ts.bob.address.Hex()+"/tokens", ""))
	assert.Equal(t, []uint64{tokenID}, owned.TokenIDs)
}

func TestUpgradeAndTransfer(t *testing.T) {
	ts := setupTest(t)
	defer tearDownTest(ts)

	ctx := context.Background()
	ts.deposit(t, ts.alice.address, domain.Ether)
	minted, err := ts.ledger.Mint(ctx, caseEngineAddress, ts.alice.address, domain.TokenAttributes{
		MemeType: domain.MemePepe,
		Rarity:   domain.RarityCommon,
	})
	require.NoError(t, err)
	tokenPath := fmt.Sprintf("/api/v1/tokens/%d", minted.ID)

	quote := decode[dto.UpgradeQuoteResponse](t, ts.call(t, nil, http.MethodGet, tokenPath+"/upgrade/quote?target_level=3", ""))
	assert.Equal(t, uint32(1), quote.CurrentLevel)
	fee, ok := new(big.Int).SetString(quote.FeeWei, 10)
	require.True(t, ok)
	assert.Positive(t, fee.Sign())

	underpaid := new(big.Int).Sub(fee, big.NewInt(1))
	rec := ts.call(t, &ts.alice, http.MethodPost, tokenPath+"/upgrade", fmt.Sprintf(`{"target_level":3,"value":%q}`, underpaid.String()))
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)

	rec = ts.call(t, &ts.bob, http.MethodPost, tokenPath+"/upgrade", fmt.Sprintf(`{"target_level":3,"value":%q}`, fee.String()))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.call(t, &ts.alice, http.MethodPost, tokenPath+"/upgrade", fmt.Sprintf(`{"target_level":3,"value":%q}`, fee.String()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, uint32(3), decode[dto.TokenResponse](t, rec).Level)

	rec = ts.call(t, &ts.alice, http.MethodPost, tokenPath+"/upgrade", `{"target_level":2,"value":"0"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.call(t, &ts.bob, http.MethodPost, tokenPath+"/transfer", fmt.Sprintf(`{"to":%q}`, ts.bob.address.Hex()))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.call(t, &ts.alice, http.MethodPost, tokenPath+"/transfer", fmt.Sprintf(`{"to":%q}`, ts.bob.address.Hex()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ts.bob.address.Hex(), decode[dto.TokenResponse](t, rec).Owner)

	rec = ts.call(t, &ts.bob, http.MethodPost, tokenPath+"/burn", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.call(t, nil, http.MethodGet, tokenPath, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBurnForUpgrade(t *testing.T) {
	ts := setupTest(t)
	defer tearDownTest(ts)

	ctx := context.Background()
	ids := make([]uint64, 0, 3)
	for i := 0; i < 3; i++ {
		token, err := ts.ledger.Mint(ctx, caseEngineAddress, ts.alice.address, domain.TokenAttributes{
			MemeType: domain.MemeType(i),
			Rarity:   domain.RarityRare,
		})
		require.NoError(t, err)
		ids = append(ids, token.ID)
	}

	rec := ts.call(t, &ts.bob, http.MethodPost, "/api/v1/burn-upgrades", fmt.Sprintf(`{"token_ids":[%d,%d,%d]}`, ids[0], ids[1], ids[2]))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.call(t, &ts.alice, http.MethodPost, "/api/v1/burn-upgrades", fmt.Sprintf(`{"token_ids":[%d,%d]}`, ids[0], ids[1]))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = ts.call(t, &ts.alice, http.MethodPost, "/api/v1/burn-upgrades", fmt.Sprintf(`{"token_ids":[%d,%d,%d]}`, ids[0], ids[1], ids[2]))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	upgraded := decode[dto.TokenResponse](t, rec)
	assert.Equal(t, domain.RarityEpic.String(), upgraded.Rarity)
	assert.Equal(t, ts.alice.address.Hex(), upgraded.Owner)

	owned := decode[dto.OwnerTokensResponse](t, ts.call(t, nil, http.MethodGet, "/api/v1/owners/"+ts.alice.address.Hex()+"/tokens", ""))
	assert.Equal(t, []uint64{upgraded.ID}, owned.TokenIDs)
}
