package market

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/store"
	"github.com/feral-file/brainrot-ledger/internal/store/schema"
	"github.com/feral-file/brainrot-ledger/internal/types"
)

const (
	// DefaultListingLimit is the page size used when none is given
	DefaultListingLimit = 50
	// MaxListingLimit caps the page size
	MaxListingLimit = 200
)

// ListingFilter narrows a listing enumeration
type ListingFilter struct {
	Seller   *common.Address
	Rarity   *domain.Rarity
	MinLevel *uint32
	Limit    int
	Offset   int
}

// Marketplace holds fixed-price listings and settles sales. It never takes custody:
// a listed token stays with its seller until the sale transfers it.
type Marketplace struct {
	ledger *ledger.Ledger
	clock  adapter.Clock
}

// New creates a new marketplace
func New(l *ledger.Ledger, clock adapter.Clock) *Marketplace {
	return &Marketplace{ledger: l, clock: clock}
}

// List offers a token owned by the caller at price, replacing the caller's previous listing of it
func (m *Marketplace) List(ctx context.Context, caller common.Address, tokenID uint64, price *big.Int) (*domain.Listing, error) {
	if price == nil || price.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	var listing *domain.Listing
	err := m.ledger.Update(ctx, func(s *ledger.Session) error {
		owner, err := s.OwnerOf(ctx, tokenID)
		if err != nil {
			return err
		}
		if owner != caller {
			return domain.ErrNotTokenOwner
		}

		existing, err := s.Tx().GetListing(ctx, tokenID)
		if err != nil {
			return err
		}
		if existing != nil && existing.SellerAddress != types.AddressKey(caller) {
			return fmt.Errorf("%w: token %d is listed by %s", domain.ErrListingConflict, tokenID, existing.SellerAddress)
		}

		row := &schema.Listing{
			TokenID:       tokenID,
			SellerAddress: types.AddressKey(caller),
			Price:         price.String(),
			CreatedAt:     m.clock.Now().UTC(),
		}
		if err := s.Tx().SaveListing(ctx, row); err != nil {
			return err
		}
		listing, err = types.ListingToDomain(row)
		if err != nil {
			return err
		}

		return s.Record(ctx, domain.EventTypeListingCreated, &tokenID, caller, map[string]interface{}{
			"seller": caller.Hex(),
			"price":  price.String(),
			"relist": existing != nil,
		})
	})
	if err != nil {
		logger.DebugCtx(ctx, "Listing rejected", logger.TokenID(tokenID), logger.Address("caller", caller), zap.Error(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Token listed", logger.TokenID(tokenID), logger.Address("seller", caller), logger.Wei("price_wei", price))
	return listing, nil
}

// Buy settles a listing: the attached value goes to the seller in full, the token goes to
// the caller and the listing is removed. Buying one's own listing is rejected.
func (m *Marketplace) Buy(ctx context.Context, call domain.Call, tokenID uint64) (*domain.Listing, error) {
	value := call.AttachedValue()

	var sold *domain.Listing
	err := m.ledger.Update(ctx, func(s *ledger.Session) error {
		row, err := s.Tx().GetListing(ctx, tokenID)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("%w: token %d", domain.ErrNotListed, tokenID)
		}
		listing, err := types.ListingToDomain(row)
		if err != nil {
			return err
		}
		if listing.Seller == call.Caller {
			return domain.ErrSelfPurchase
		}

		owner, err := s.OwnerOf(ctx, tokenID)
		if err != nil {
			return err
		}
		if owner != listing.Seller {
			return fmt.Errorf("%w: token %d changed hands", domain.ErrNotListed, tokenID)
		}
		if value.Cmp(listing.Price) < 0 {
			return fmt.Errorf("%w: listing price %s wei, got %s", domain.ErrInsufficientPayment, listing.Price, value)
		}

		if err := s.Pay(ctx, call.Caller, listing.Seller, value); err != nil {
			return err
		}
		if err := s.Transfer(ctx, tokenID, listing.Seller, call.Caller); err != nil {
			return err
		}

		sold = listing
		return s.Record(ctx, domain.EventTypeListingSold, &tokenID, call.Caller, map[string]interface{}{
			"seller": listing.Seller.Hex(),
			"buyer":  call.Caller.Hex(),
			"price":  listing.Price.String(),
			"paid":   value.String(),
		})
	})
	if err != nil {
		logger.DebugCtx(ctx, "Purchase rejected", logger.TokenID(tokenID), logger.Address("buyer", call.Caller), zap.Error(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Listing sold",
		logger.TokenID(tokenID),
		logger.Address("seller", sold.Seller),
		logger.Address("buyer", call.Caller),
		logger.Wei("value_wei", value))
	return sold, nil
}

// Cancel removes the caller's listing of a token
func (m *Marketplace) Cancel(ctx context.Context, caller common.Address, tokenID uint64) error {
	err := m.ledger.Update(ctx, func(s *ledger.Session) error {
		row, err := s.Tx().GetListing(ctx, tokenID)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("%w: token %d", domain.ErrNotListed, tokenID)
		}
		if row.SellerAddress != types.AddressKey(caller) {
			return domain.ErrNotSeller
		}
		if err := s.Tx().DeleteListing(ctx, tokenID); err != nil {
			return err
		}
		return s.Record(ctx, domain.EventTypeListingCancelled, &tokenID, caller, map[string]interface{}{
			"seller": row.SellerAddress,
		})
	})
	if err != nil {
		logger.DebugCtx(ctx, "Cancel rejected", logger.TokenID(tokenID), logger.Address("caller", caller), zap.Error(err))
		return err
	}

	logger.InfoCtx(ctx, "Listing cancelled", logger.TokenID(tokenID), logger.Address("seller", caller))
	return nil
}

// GetListing returns the active listing of a token
func (m *Marketplace) GetListing(ctx context.Context, tokenID uint64) (*domain.Listing, error) {
	var listing *domain.Listing
	err := m.ledger.Read(ctx, func(s *ledger.Session) error {
		row, err := s.Tx().GetListing(ctx, tokenID)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("%w: token %d", domain.ErrNotListed, tokenID)
		}
		listing, err = types.ListingToDomain(row)
		return err
	})
	return listing, err
}

// Listings enumerates active listings ordered by token id
func (m *Marketplace) Listings(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	query := store.ListingFilter{
		Limit:  filter.Limit,
		Offset: max(filter.Offset, 0),
	}
	if query.Limit <= 0 {
		query.Limit = DefaultListingLimit
	}
	query.Limit = min(query.Limit, MaxListingLimit)
	if filter.Seller != nil {
		seller := types.AddressKey(*filter.Seller)
		query.Seller = &seller
	}
	if filter.Rarity != nil {
		rarity := int16(*filter.Rarity)
		query.Rarity = &rarity
	}
	if filter.MinLevel != nil {
		level := int64(*filter.MinLevel)
		query.MinLevel = &level
	}

	listings := []domain.Listing{}
	err := m.ledger.Read(ctx, func(s *ledger.Session) error {
		rows, err := s.Tx().GetListings(ctx, query)
		if err != nil {
			return err
		}
		for i := range rows {
			l, err := types.ListingToDomain(&rows[i])
			if err != nil {
				return err
			}
			listings = append(listings, *l)
		}
		return nil
	})
	return listings, err
}
