package store

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/brainrot-ledger/internal/store/schema"
)

const (
	testOwnerA = "0x00000000000000000000000000000000000000A1"
	testOwnerB = "0x00000000000000000000000000000000000000B2"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestToken creates a live token row owned by owner
func buildTestToken(id uint64, owner string, rarity int16, level int64) *schema.Token {
	return &schema.Token{
		ID:           id,
		OwnerAddress: &owner,
		MemeType:     0,
		Rarity:       rarity,
		ColorVariant: 2,
		Level:        level,
		MetadataURI:  "https://brainrot.gg/metadata/1",
	}
}

// mintTestToken creates a token and indexes it for its owner
func mintTestToken(t *testing.T, s Store, id uint64, owner string, rarity int16, level int64) {
	err := s.Transact(context.Background(), func(tx Tx) error {
		if err := tx.CreateToken(context.Background(), buildTestToken(id, owner, rarity, level)); err != nil {
			return err
		}
		return tx.AppendOwnedToken(context.Background(), owner, id)
	})
	require.NoError(t, err)
}

func ownedTokens(t *testing.T, s Store, owner string) []uint64 {
	var ids []uint64
	err := s.View(context.Background(), func(tx Tx) error {
		var err error
		ids, err = tx.GetOwnedTokens(context.Background(), owner)
		return err
	})
	require.NoError(t, err)
	return ids
}

// =============================================================================
// Tests
// =============================================================================

func testSequences(t *testing.T, s Store) {
	ctx := context.Background()

	var got []uint64
	err := s.Transact(ctx, func(tx Tx) error {
		for range 3 {
			id, err := tx.NextSequence(ctx, SequenceTokenID)
			if err != nil {
				return err
			}
			got = append(got, id)
		}
		other, err := tx.NextSequence(ctx, SequencePurchaseID)
		if err != nil {
			return err
		}
		got = append(got, other)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3, 1}, got)

	t.Run("rolled back increments are discarded", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.Transact(ctx, func(tx Tx) error {
			_, err := tx.NextSequence(ctx, SequenceTokenID)
			require.NoError(t, err)
			return boom
		})
		assert.ErrorIs(t, err, boom)

		err = s.Transact(ctx, func(tx Tx) error {
			id, err := tx.NextSequence(ctx, SequenceTokenID)
			assert.Equal(t, uint64(4), id)
			return err
		})
		require.NoError(t, err)
	})
}

func testTokens(t *testing.T, s Store) {
	ctx := context.Background()
	mintTestToken(t, s, 1, testOwnerA, 1, 1)

	t.Run("get existing token", func(t *testing.T) {
		err := s.View(ctx, func(tx Tx) error {
			token, err := tx.GetToken(ctx, 1)
			require.NoError(t, err)
			require.NotNil(t, token)
			assert.Equal(t, testOwnerA, *token.OwnerAddress)
			assert.Equal(t, int16(1), token.Rarity)
			assert.Equal(t, int16(2), token.ColorVariant)
			assert.False(t, token.Burned)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("get missing token returns nil", func(t *testing.T) {
		err := s.View(ctx, func(tx Tx) error {
			token, err := tx.GetToken(ctx, 999)
			require.NoError(t, err)
			assert.Nil(t, token)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("update owner level and burn", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			token, err := tx.GetToken(ctx, 1)
			require.NoError(t, err)
			owner := testOwnerB
			token.OwnerAddress = &owner
			token.Level = 7
			return tx.UpdateToken(ctx, token)
		})
		require.NoError(t, err)

		err = s.Transact(ctx, func(tx Tx) error {
			token, err := tx.GetToken(ctx, 1)
			require.NoError(t, err)
			assert.Equal(t, testOwnerB, *token.OwnerAddress)
			assert.Equal(t, int64(7), token.Level)

			now := time.Now().UTC()
			token.OwnerAddress = nil
			token.Burned = true
			token.BurnedAt = &now
			return tx.UpdateToken(ctx, token)
		})
		require.NoError(t, err)

		err = s.View(ctx, func(tx Tx) error {
			token, err := tx.GetToken(ctx, 1)
			require.NoError(t, err)
			assert.True(t, token.Burned)
			assert.Nil(t, token.OwnerAddress)
			assert.NotNil(t, token.BurnedAt)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("writes in view are rejected", func(t *testing.T) {
		err := s.View(ctx, func(tx Tx) error {
			return tx.CreateToken(ctx, buildTestToken(2, testOwnerA, 0, 1))
		})
		assert.Error(t, err)
	})
}

func testOwnershipIndex(t *testing.T, s Store) {
	ctx := context.Background()
	for id := uint64(1); id <= 4; id++ {
		mintTestToken(t, s, id, testOwnerA, 0, 1)
	}
	assert.Equal(t, []uint64{1, 2, 3, 4}, ownedTokens(t, s, testOwnerA))

	t.Run("remove moves last into the freed slot", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			return tx.RemoveOwnedToken(ctx, testOwnerA, 2)
		})
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 4, 3}, ownedTokens(t, s, testOwnerA))
	})

	t.Run("remove last entry", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			return tx.RemoveOwnedToken(ctx, testOwnerA, 3)
		})
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 4}, ownedTokens(t, s, testOwnerA))
	})

	t.Run("append after removal", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			return tx.AppendOwnedToken(ctx, testOwnerA, 2)
		})
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 4, 2}, ownedTokens(t, s, testOwnerA))
	})

	t.Run("remove unknown token fails", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			return tx.RemoveOwnedToken(ctx, testOwnerB, 1)
		})
		assert.Error(t, err)
		assert.Equal(t, []uint64{1, 4, 2}, ownedTokens(t, s, testOwnerA))
	})

	t.Run("empty owner", func(t *testing.T) {
		assert.Empty(t, ownedTokens(t, s, testOwnerB))
	})
}

func testAuthorizations(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.Transact(ctx, func(tx Tx) error {
		ok, err := tx.IsAuthorized(ctx, testOwnerA)
		require.NoError(t, err)
		assert.False(t, ok)

		if err := tx.SetAuthorization(ctx, testOwnerB, true); err != nil {
			return err
		}
		if err := tx.SetAuthorization(ctx, testOwnerA, true); err != nil {
			return err
		}
		// idempotent
		return tx.SetAuthorization(ctx, testOwnerA, true)
	})
	require.NoError(t, err)

	err = s.View(ctx, func(tx Tx) error {
		ok, err := tx.IsAuthorized(ctx, testOwnerA)
		require.NoError(t, err)
		assert.True(t, ok)

		list, err := tx.ListAuthorized(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{testOwnerA, testOwnerB}, list)
		return nil
	})
	require.NoError(t, err)

	err = s.Transact(ctx, func(tx Tx) error {
		return tx.SetAuthorization(ctx, testOwnerB, false)
	})
	require.NoError(t, err)

	err = s.View(ctx, func(tx Tx) error {
		list, err := tx.ListAuthorized(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{testOwnerA}, list)
		return nil
	})
	require.NoError(t, err)
}

func testBalances(t *testing.T, s Store) {
	ctx := context.Background()
	huge, ok := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	require.True(t, ok)

	err := s.Transact(ctx, func(tx Tx) error {
		balance, err := tx.GetBalance(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, 0, balance.Sign())

		if err := tx.SetBalance(ctx, testOwnerA, huge); err != nil {
			return err
		}
		return tx.SetBalance(ctx, testOwnerB, big.NewInt(42))
	})
	require.NoError(t, err)

	err = s.View(ctx, func(tx Tx) error {
		a, err := tx.GetBalance(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, huge.String(), a.String())

		b, err := tx.GetBalance(ctx, testOwnerB)
		require.NoError(t, err)
		assert.Equal(t, "42", b.String())
		return nil
	})
	require.NoError(t, err)

	t.Run("negative balance rejected", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			return tx.SetBalance(ctx, testOwnerB, big.NewInt(-1))
		})
		assert.Error(t, err)
	})
}

func testListings(t *testing.T, s Store) {
	ctx := context.Background()
	mintTestToken(t, s, 1, testOwnerA, 0, 1)
	mintTestToken(t, s, 2, testOwnerA, 2, 5)
	mintTestToken(t, s, 3, testOwnerB, 2, 9)

	err := s.Transact(ctx, func(tx Tx) error {
		for _, l := range []schema.Listing{
			{TokenID: 1, SellerAddress: testOwnerA, Price: "100"},
			{TokenID: 2, SellerAddress: testOwnerA, Price: "200"},
			{TokenID: 3, SellerAddress: testOwnerB, Price: "300"},
		} {
			if err := tx.SaveListing(ctx, &l); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	listingIDs := func(filter ListingFilter) []uint64 {
		var ids []uint64
		err := s.View(ctx, func(tx Tx) error {
			listings, err := tx.GetListings(ctx, filter)
			for _, l := range listings {
				ids = append(ids, l.TokenID)
			}
			return err
		})
		require.NoError(t, err)
		return ids
	}

	seller := testOwnerA
	epic := int16(2)
	minLevel := int64(6)

	assert.Equal(t, []uint64{1, 2, 3}, listingIDs(ListingFilter{}))
	assert.Equal(t, []uint64{1, 2}, listingIDs(ListingFilter{Seller: &seller}))
	assert.Equal(t, []uint64{2, 3}, listingIDs(ListingFilter{Rarity: &epic}))
	assert.Equal(t, []uint64{3}, listingIDs(ListingFilter{MinLevel: &minLevel}))
	assert.Equal(t, []uint64{2}, listingIDs(ListingFilter{Limit: 1, Offset: 1}))

	t.Run("reprice replaces the listing", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			return tx.SaveListing(ctx, &schema.Listing{TokenID: 1, SellerAddress: testOwnerA, Price: "150"})
		})
		require.NoError(t, err)

		err = s.View(ctx, func(tx Tx) error {
			l, err := tx.GetListing(ctx, 1)
			require.NoError(t, err)
			require.NotNil(t, l)
			assert.Equal(t, "150", l.Price)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("delete listing", func(t *testing.T) {
		err := s.Transact(ctx, func(tx Tx) error {
			if err := tx.DeleteListing(ctx, 1); err != nil {
				return err
			}
			// deleting twice is a no-op
			return tx.DeleteListing(ctx, 1)
		})
		require.NoError(t, err)

		err = s.View(ctx, func(tx Tx) error {
			l, err := tx.GetListing(ctx, 1)
			require.NoError(t, err)
			assert.Nil(t, l)
			return nil
		})
		require.NoError(t, err)
	})
}

func testPurchases(t *testing.T, s Store) {
	ctx := context.Background()

	err := s.Transact(ctx, func(tx Tx) error {
		for i, buyer := range []string{testOwnerA, testOwnerB, testOwnerA} {
			p := schema.CasePurchase{
				ID:           uint64(i + 1),
				BuyerAddress: buyer,
				CaseType:     "bronze",
				Paid:         "500000000000000",
				RevealHeight: uint64(10 + i*10),
				Status:       schema.CasePurchaseStatusPending,
			}
			if err := tx.CreatePurchase(ctx, &p); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	purchaseIDs := func(filter PurchaseFilter) []uint64 {
		var ids []uint64
		err := s.View(ctx, func(tx Tx) error {
			purchases, err := tx.GetPurchases(ctx, filter)
			for _, p := range purchases {
				ids = append(ids, p.ID)
			}
			return err
		})
		require.NoError(t, err)
		return ids
	}

	buyer := testOwnerA
	pending := schema.CasePurchaseStatusPending
	height := uint64(20)

	assert.Equal(t, []uint64{1, 3}, purchaseIDs(PurchaseFilter{Buyer: &buyer}))
	assert.Equal(t, []uint64{1, 2}, purchaseIDs(PurchaseFilter{Status: &pending, MaxRevealHeight: &height}))
	assert.Equal(t, []uint64{1}, purchaseIDs(PurchaseFilter{Limit: 1}))
	assert.Equal(t, []uint64{2}, purchaseIDs(PurchaseFilter{Status: &pending, MaxRevealHeight: &height, AfterID: 1}))
	assert.Equal(t, []uint64{2, 3}, purchaseIDs(PurchaseFilter{AfterID: 1, Limit: 5}))

	mintTestToken(t, s, 1, testOwnerA, 0, 1)
	err = s.Transact(ctx, func(tx Tx) error {
		p, err := tx.GetPurchase(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, p)
		tokenID := uint64(1)
		now := time.Now().UTC()
		p.Status = schema.CasePurchaseStatusOpened
		p.TokenID = &tokenID
		p.OpenedAt = &now
		return tx.UpdatePurchase(ctx, p)
	})
	require.NoError(t, err)

	assert.Equal(t, []uint64{2}, purchaseIDs(PurchaseFilter{Status: &pending, MaxRevealHeight: &height}))

	err = s.View(ctx, func(tx Tx) error {
		p, err := tx.GetPurchase(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, schema.CasePurchaseStatusOpened, p.Status)
		require.NotNil(t, p.TokenID)
		assert.Equal(t, uint64(1), *p.TokenID)

		missing, err := tx.GetPurchase(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, missing)
		return nil
	})
	require.NoError(t, err)
}

func testLedgerEvents(t *testing.T, s Store) {
	ctx := context.Background()

	var ids []uint64
	err := s.Transact(ctx, func(tx Tx) error {
		for _, eventID := range []string{"01JAAAAAAAAAAAAAAAAAAAAAA1", "01JAAAAAAAAAAAAAAAAAAAAAA2", "01JAAAAAAAAAAAAAAAAAAAAAA3"} {
			e := schema.LedgerEvent{
				EventID:   eventID,
				EventType: "token.minted",
				Actor:     testOwnerA,
				Payload:   datatypes.JSON(`{"token_id":1}`),
				Digest:    "0xabc",
			}
			if err := tx.AppendEvent(ctx, &e); err != nil {
				return err
			}
			ids = append(ids, e.ID)
		}
		return nil
	})
	require.NoError(t, err)
	require.Len(t, ids, 3)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	events, err := s.GetUnpublishedEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "01JAAAAAAAAAAAAAAAAAAAAAA1", events[0].EventID)

	require.NoError(t, s.MarkEventsPublished(ctx, []uint64{ids[0], ids[1]}, time.Now().UTC()))

	events, err = s.GetUnpublishedEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, ids[2], events[0].ID)

	t.Run("rolled back events are discarded", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.Transact(ctx, func(tx Tx) error {
			e := schema.LedgerEvent{EventID: "01JAAAAAAAAAAAAAAAAAAAAAA4", EventType: "token.burned", Actor: testOwnerA, Payload: datatypes.JSON(`{}`), Digest: "0x0"}
			require.NoError(t, tx.AppendEvent(ctx, &e))
			return boom
		})
		assert.ErrorIs(t, err, boom)

		events, err := s.GetUnpublishedEvents(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func testTransactRollback(t *testing.T, s Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transact(ctx, func(tx Tx) error {
		if err := tx.CreateToken(ctx, buildTestToken(1, testOwnerA, 0, 1)); err != nil {
			return err
		}
		if err := tx.AppendOwnedToken(ctx, testOwnerA, 1); err != nil {
			return err
		}
		if err := tx.SetBalance(ctx, testOwnerA, big.NewInt(5)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	err = s.View(ctx, func(tx Tx) error {
		token, err := tx.GetToken(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, token)

		ids, err := tx.GetOwnedTokens(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Empty(t, ids)

		balance, err := tx.GetBalance(ctx, testOwnerA)
		require.NoError(t, err)
		assert.Equal(t, 0, balance.Sign())
		return nil
	})
	require.NoError(t, err)
}

// RunStoreTests runs every store test against the implementation returned by initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Sequences", testSequences},
		{"Tokens", testTokens},
		{"OwnershipIndex", testOwnershipIndex},
		{"Authorizations", testAuthorizations},
		{"Balances", testBalances},
		{"Listings", testListings},
		{"Purchases", testPurchases},
		{"LedgerEvents", testLedgerEvents},
		{"TransactRollback", testTransactRollback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
