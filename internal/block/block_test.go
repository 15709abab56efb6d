package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/feral-file/brainrot-ledger/internal/block"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBlockProviderMocks contains all the mocks needed for testing the block provider
type testBlockProviderMocks struct {
	ctrl       *gomock.Controller
	fetcher    *mocks.MockBlockFetcher
	clock      *mocks.MockClock
	provider   block.BlockProvider
	testConfig block.Config
}

// setupTest creates all the mocks and block provider for testing
func setupTest(t *testing.T) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	testConfig := block.Config{
		TTL:          10 * time.Second,
		StaleWindow:  2 * time.Minute,
		BlockHashTTL: 0,
	}

	provider := block.NewBlockProvider(mockFetcher, testConfig, mockClock)

	return &testBlockProviderMocks{
		ctrl:       ctrl,
		fetcher:    mockFetcher,
		clock:      mockClock,
		provider:   provider,
		testConfig: testConfig,
	}
}

// tearDownTest cleans up the test mocks
func tearDownTest(tm *testBlockProviderMocks) {
	tm.ctrl.Finish()
}

func TestBlockProvider_GetLatestBlock_FirstFetch(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	// Act
	blockNum, err := tm.provider.GetLatestBlock(ctx)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)
}

func TestBlockProvider_GetLatestBlock_UsesCache_WithinTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// First fetch - cache miss
	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	blockNum1, err1 := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err1)
	assert.Equal(t, uint64(1000), blockNum1)

	// Second fetch - should use cache (within TTL)
	tm.clock.EXPECT().Now().Return(now.Add(5 * time.Second))

	// Act
	blockNum2, err2 := tm.provider.GetLatestBlock(ctx)

	// Assert
	assert.NoError(t, err2)
	assert.Equal(t, uint64(1000), blockNum2) // Should return cached value - fetcher called only once
}

func TestBlockProvider_GetLatestBlock_RefreshesCache_AfterTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// First fetch - cache miss
	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	blockNum1, err1 := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err1)
	assert.Equal(t, uint64(1000), blockNum1)

	// Second fetch - after TTL expires
	laterTime := now.Add(15 * time.Second) // Beyond TTL
	tm.clock.EXPECT().Now().Return(laterTime)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1100), nil)

	// Act
	blockNum2, err2 := tm.provider.GetLatestBlock(ctx)

	// Assert
	assert.NoError(t, err2)
	assert.Equal(t, uint64(1100), blockNum2) // Should return new value
}

func TestBlockProvider_GetLatestBlock_UsesStaleCacheOnError_WithinStaleWindow(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// First fetch - successful
	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	blockNum1, err1 := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err1)
	assert.Equal(t, uint64(1000), blockNum1)

	// Second fetch - after TTL expires but fetch fails
	laterTime := now.Add(30 * time.Second) // Beyond TTL but within StaleWindow
	tm.clock.EXPECT().Now().Return(laterTime)
	fetchError := errors.New("network error")
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), fetchError)

	// Act
	blockNum2, err2 := tm.provider.GetLatestBlock(ctx)

	// Assert - should use stale cache as fallback
	assert.NoError(t, err2)
	assert.Equal(t, uint64(1000), blockNum2) // Should return stale cached value
}

func TestBlockProvider_GetLatestBlock_ReturnsError_WhenNoCache_AndFetchFails(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	fetchError := errors.New("network error")
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), fetchError)

	// Act
	blockNum, err := tm.provider.GetLatestBlock(ctx)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, uint64(0), blockNum)
	assert.Contains(t, err.Error(), "failed to fetch latest block and no valid cache available")
}

func TestBlockProvider_GetLatestBlock_ReturnsError_WhenStaleCache_BeyondStaleWindow(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// First fetch - successful
	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)

	blockNum1, err1 := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err1)
	assert.Equal(t, uint64(1000), blockNum1)

	// Second fetch - way beyond StaleWindow and fetch fails
	laterTime := now.Add(5 * time.Minute) // Beyond StaleWindow (2 minutes)
	tm.clock.EXPECT().Now().Return(laterTime)
	fetchError := errors.New("network error")
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), fetchError)

	// Act
	blockNum2, err2 := tm.provider.GetLatestBlock(ctx)

	// Assert - should return error as stale cache is too old
	assert.Error(t, err2)
	assert.Equal(t, uint64(0), blockNum2)
	assert.Contains(t, err2.Error(), "failed to fetch latest block and no valid cache available")
}

func TestBlockProvider_RefreshLatestBlock_BypassesCache(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	blockNum, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1000), blockNum)

	// within TTL the chain has moved on; a refresh must see it
	tm.clock.EXPECT().Now().Return(now.Add(time.Second))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1001), nil)
	blockNum, err = tm.provider.RefreshLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1001), blockNum)

	// and the refreshed head is what the cache serves afterwards
	tm.clock.EXPECT().Now().Return(now.Add(2 * time.Second))
	blockNum, err = tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1001), blockNum)
}

func TestBlockProvider_RefreshLatestBlock_NoStaleFallback(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil)
	_, err := tm.provider.GetLatestBlock(ctx)
	assert.NoError(t, err)

	tm.clock.EXPECT().Now().Return(now.Add(time.Second))
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(0), errors.New("network error"))
	blockNum, err := tm.provider.RefreshLatestBlock(ctx)
	assert.Error(t, err)
	assert.Equal(t, uint64(0), blockNum)
	assert.Contains(t, err.Error(), "failed to fetch latest block")
}

func TestBlockProvider_ConcurrentAccess(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Mock the fetcher to return - AnyTimes() allows multiple concurrent calls
	tm.fetcher.EXPECT().FetchLatestBlock(ctx).Return(uint64(1000), nil).AnyTimes()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	// Act - concurrent access
	done := make(chan bool, 10)
	for range 10 {
		go func() {
			blockNum, err := tm.provider.GetLatestBlock(ctx)
			assert.NoError(t, err)
			assert.Equal(t, uint64(1000), blockNum)
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for range 10 {
		<-done
	}
}

// Tests for GetBlockHash

func TestBlockProvider_GetBlockHash_FirstFetch(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hash := common.HexToHash("0xabc")

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(hash, nil)

	got, err := tm.provider.GetBlockHash(ctx, 1000)

	assert.NoError(t, err)
	assert.Equal(t, hash, got)
}

func TestBlockProvider_GetBlockHash_UsesCache_WithZeroTTL(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hash := common.HexToHash("0xabc")

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(hash, nil)

	first, err := tm.provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, hash, first)

	// TTL 0 caches forever, the fetcher is called once
	tm.clock.EXPECT().Now().Return(now.Add(24 * time.Hour))

	second, err := tm.provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, hash, second)
}

func TestBlockProvider_GetBlockHash_RefreshesCache_AfterTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	provider := block.NewBlockProvider(mockFetcher, block.Config{
		TTL:          10 * time.Second,
		StaleWindow:  2 * time.Minute,
		BlockHashTTL: 30 * time.Second,
	}, mockClock)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hash := common.HexToHash("0xabc")
	reorged := common.HexToHash("0xdef")

	mockClock.EXPECT().Now().Return(now)
	mockFetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(hash, nil)

	first, err := provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, hash, first)

	mockClock.EXPECT().Now().Return(now.Add(35 * time.Second))
	mockFetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(reorged, nil)

	second, err := provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, reorged, second)
}

func TestBlockProvider_GetBlockHash_UsesStaleCacheOnError_WithinStaleWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	mockClock := mocks.NewMockClock(ctrl)

	provider := block.NewBlockProvider(mockFetcher, block.Config{
		TTL:          10 * time.Second,
		StaleWindow:  2 * time.Minute,
		BlockHashTTL: 30 * time.Second,
	}, mockClock)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hash := common.HexToHash("0xabc")

	mockClock.EXPECT().Now().Return(now)
	mockFetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(hash, nil)

	first, err := provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, hash, first)

	mockClock.EXPECT().Now().Return(now.Add(45 * time.Second))
	mockFetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(common.Hash{}, errors.New("network error"))

	second, err := provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, hash, second)
}

func TestBlockProvider_GetBlockHash_ReturnsError_WhenNoCache_AndFetchFails(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(common.Hash{}, errors.New("network error"))

	hash, err := tm.provider.GetBlockHash(ctx, 1000)

	assert.Error(t, err)
	assert.Equal(t, common.Hash{}, hash)
	assert.Contains(t, err.Error(), "failed to fetch block hash for block 1000 and no valid cache available")
}

func TestBlockProvider_GetBlockHash_MultipleBlocks(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hash1 := common.HexToHash("0x01")
	hash2 := common.HexToHash("0x02")

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(hash1, nil)
	got1, err := tm.provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, hash1, got1)

	tm.clock.EXPECT().Now().Return(now)
	tm.fetcher.EXPECT().FetchBlockHash(ctx, uint64(2000)).Return(hash2, nil)
	got2, err := tm.provider.GetBlockHash(ctx, 2000)
	assert.NoError(t, err)
	assert.Equal(t, hash2, got2)

	tm.clock.EXPECT().Now().Return(now.Add(time.Hour))
	again, err := tm.provider.GetBlockHash(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, hash1, again)
}

func TestBlockProvider_GetBlockHash_ConcurrentAccess(t *testing.T) {
	tm := setupTest(t)
	defer tearDownTest(tm)

	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hash := common.HexToHash("0xabc")

	tm.fetcher.EXPECT().FetchBlockHash(ctx, uint64(1000)).Return(hash, nil).AnyTimes()
	tm.clock.EXPECT().Now().Return(now).AnyTimes()

	done := make(chan bool, 10)
	for range 10 {
		go func() {
			got, err := tm.provider.GetBlockHash(ctx, 1000)
			assert.NoError(t, err)
			assert.Equal(t, hash, got)
			done <- true
		}()
	}

	for range 10 {
		<-done
	}
}
