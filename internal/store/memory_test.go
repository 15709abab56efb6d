package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initMemoryTestDB(t *testing.T) Store {
	return NewMemoryStore()
}

func cleanupMemoryTestDB(t *testing.T) {}

// TestMemoryStore runs all store tests against the in-memory store
func TestMemoryStore(t *testing.T) {
	RunStoreTests(t, initMemoryTestDB, cleanupMemoryTestDB)
}

func TestMemoryStore_ConcurrentSequence(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	seen := make(chan uint64, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Transact(ctx, func(tx Tx) error {
				id, err := tx.NextSequence(ctx, SequenceTokenID)
				seen <- id
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[uint64]struct{})
	for id := range seen {
		unique[id] = struct{}{}
	}
	assert.Len(t, unique, workers)
	for id := uint64(1); id <= workers; id++ {
		assert.Contains(t, unique, id)
	}
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Transact(ctx, func(tx Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMemoryStore_SwapRemoveTracksMovedToken(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	for id := uint64(1); id <= 4; id++ {
		mintTestToken(t, s, id, testOwnerA, 0, 1)
	}

	remove := func(owner string, id uint64) error {
		return s.Transact(ctx, func(tx Tx) error {
			return tx.RemoveOwnedToken(ctx, owner, id)
		})
	}

	// 4 moves into the slot of 2, and must be removable from there afterwards
	require.NoError(t, remove(testOwnerA, 2))
	assert.Equal(t, []uint64{1, 4, 3}, ownedTokens(t, s, testOwnerA))
	require.NoError(t, remove(testOwnerA, 4))
	assert.Equal(t, []uint64{1, 3}, ownedTokens(t, s, testOwnerA))

	// a token is indexed once, and only for its owner
	assert.Error(t, remove(testOwnerB, 1))
	assert.Error(t, remove(testOwnerA, 2))
	err := s.Transact(ctx, func(tx Tx) error {
		return tx.AppendOwnedToken(ctx, testOwnerB, 3)
	})
	assert.Error(t, err)

	require.NoError(t, s.Transact(ctx, func(tx Tx) error {
		if err := tx.RemoveOwnedToken(ctx, testOwnerA, 1); err != nil {
			return err
		}
		return tx.AppendOwnedToken(ctx, testOwnerB, 1)
	}))
	assert.Equal(t, []uint64{3}, ownedTokens(t, s, testOwnerA))
	assert.Equal(t, []uint64{1}, ownedTokens(t, s, testOwnerB))
}
