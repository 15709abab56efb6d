package cases

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/randomness"
	"github.com/feral-file/brainrot-ledger/internal/store"
	"github.com/feral-file/brainrot-ledger/internal/store/schema"
	"github.com/feral-file/brainrot-ledger/internal/types"
)

// MIN_REVEAL_DELAY is the smallest accepted reveal delay. The node answering the
// head query may trail the network by a block, so a purchase never commits to
// the block right after the head it observed.
const MIN_REVEAL_DELAY = 2

// Config holds the case engine configuration
type Config struct {
	// Address is the engine's identity: it receives case payments and mints rewards
	Address common.Address
	// Catalogue lists the purchasable cases
	Catalogue Catalogue
	// RevealDelay is how many beacon rounds after the purchase decide the reward. Raised to MIN_REVEAL_DELAY when lower.
	RevealDelay uint64
}

// Engine sells cases and resolves them into minted tokens.
//
// A purchase commits to a future beacon round. Once that round is sealed anyone
// may open the purchase; the reward always goes to the buyer and is decided only
// by the round seed and the purchase id.
type Engine struct {
	ledger *ledger.Ledger
	beacon randomness.Beacon
	config Config
	clock  adapter.Clock
}

// NewEngine creates a new case engine
func NewEngine(l *ledger.Ledger, beacon randomness.Beacon, config Config, clock adapter.Clock) *Engine {
	if config.RevealDelay < MIN_REVEAL_DELAY {
		config.RevealDelay = MIN_REVEAL_DELAY
	}
	if config.Catalogue == nil {
		config.Catalogue = DefaultCatalogue()
	}
	return &Engine{
		ledger: l,
		beacon: beacon,
		config: config,
		clock:  clock,
	}
}

// Address returns the engine address
func (e *Engine) Address() common.Address {
	return e.config.Address
}

// Catalogue returns the purchasable cases in display order
func (e *Engine) Catalogue() []Tier {
	return e.config.Catalogue.Tiers()
}

// BuyCase records a paid case purchase. The whole attached value is kept by the engine.
func (e *Engine) BuyCase(ctx context.Context, call domain.Call, caseType domain.CaseType) (*domain.CasePurchase, error) {
	tier, ok := e.config.Catalogue[caseType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCaseType, caseType)
	}

	value := call.AttachedValue()
	if value.Cmp(tier.Price) < 0 {
		logger.DebugCtx(ctx, "Case purchase underpaid",
			logger.Address("buyer", call.Caller),
			logger.Wei("value_wei", value),
			logger.Wei("price_wei", tier.Price))
		return nil, fmt.Errorf("%w: %s case costs %s wei, got %s", domain.ErrInsufficientPayment, caseType, tier.Price, value)
	}

	// the commitment must not rely on a cached head: the round after a stale head may already be public
	height, err := e.beacon.FreshHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read beacon height: %w", err)
	}
	revealHeight := height + e.config.RevealDelay

	var purchase *domain.CasePurchase
	err = e.ledger.Update(ctx, func(s *ledger.Session) error {
		if err := s.Pay(ctx, call.Caller, e.config.Address, value); err != nil {
			return err
		}

		id, err := s.Tx().NextSequence(ctx, store.SequencePurchaseID)
		if err != nil {
			return err
		}

		row := &schema.CasePurchase{
			ID:           id,
			BuyerAddress: types.AddressKey(call.Caller),
			CaseType:     string(caseType),
			Paid:         value.String(),
			RevealHeight: revealHeight,
			Status:       schema.CasePurchaseStatusPending,
			CreatedAt:    e.clock.Now().UTC(),
		}
		if err := s.Tx().CreatePurchase(ctx, row); err != nil {
			return err
		}

		purchase, err = types.PurchaseToDomain(row)
		if err != nil {
			return err
		}

		return s.Record(ctx, domain.EventTypeCasePurchased, nil, call.Caller, map[string]interface{}{
			"purchase_id":   id,
			"case_type":     string(caseType),
			"paid":          value.String(),
			"reveal_height": revealHeight,
		})
	})
	if err != nil {
		logger.DebugCtx(ctx, "Case purchase rejected", logger.Address("buyer", call.Caller), zap.Error(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Case purchased",
		zap.Uint64("purchase_id", purchase.ID),
		zap.String("case_type", string(caseType)),
		logger.Address("buyer", call.Caller),
		logger.Wei("value_wei", value),
		zap.Uint64("reveal_height", revealHeight))
	return purchase, nil
}

// OpenCase resolves a pending purchase into a token minted to its buyer.
// It fails with ErrPurchaseNotReady while the reveal round is not sealed, leaving
// the purchase pending, and with ErrUnknownPurchase once it has been opened.
func (e *Engine) OpenCase(ctx context.Context, call domain.Call, purchaseID uint64) (*domain.Token, error) {
	pending, err := e.GetPurchase(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if pending.Status != domain.PurchaseStatusPending {
		return nil, fmt.Errorf("%w: %d already opened", domain.ErrUnknownPurchase, purchaseID)
	}

	tier, ok := e.config.Catalogue[pending.CaseType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCaseType, pending.CaseType)
	}

	beaconSeed, err := e.beacon.Seed(ctx, pending.RevealHeight)
	if err != nil {
		if errors.Is(err, randomness.ErrNotSealed) {
			return nil, fmt.Errorf("%w: reveal height %d", domain.ErrPurchaseNotReady, pending.RevealHeight)
		}
		return nil, fmt.Errorf("failed to read beacon seed: %w", err)
	}

	seed := randomness.PurchaseSeed(beaconSeed, purchaseID)
	rarity, err := randomness.RollRarity(seed, tier.Table)
	if err != nil {
		return nil, err
	}
	attrs, err := randomness.Attributes(seed, rarity)
	if err != nil {
		return nil, err
	}

	var token *domain.Token
	err = e.ledger.Update(ctx, func(s *ledger.Session) error {
		// re-validate under the lock: a concurrent open may have won
		row, err := s.Tx().GetPurchase(ctx, purchaseID)
		if err != nil {
			return err
		}
		if row == nil || row.Status != schema.CasePurchaseStatusPending {
			return fmt.Errorf("%w: %d", domain.ErrUnknownPurchase, purchaseID)
		}

		buyer := common.HexToAddress(row.BuyerAddress)
		token, err = s.Mint(ctx, e.config.Address, buyer, attrs)
		if err != nil {
			return err
		}

		now := e.clock.Now().UTC()
		row.Status = schema.CasePurchaseStatusOpened
		row.TokenID = &token.ID
		row.OpenedAt = &now
		if err := s.Tx().UpdatePurchase(ctx, row); err != nil {
			return err
		}

		return s.Record(ctx, domain.EventTypeCaseOpened, &token.ID, call.Caller, map[string]interface{}{
			"purchase_id": purchaseID,
			"buyer":       buyer.Hex(),
			"rarity":      rarity.String(),
			"meme_type":   attrs.MemeType.String(),
			"seed":        seed.Hex(),
		})
	})
	if err != nil {
		logger.DebugCtx(ctx, "Case open rejected", zap.Uint64("purchase_id", purchaseID), zap.Error(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Case opened",
		zap.Uint64("purchase_id", purchaseID),
		logger.TokenID(token.ID),
		logger.Address("owner", token.Owner),
		zap.Stringer("rarity", token.Rarity),
		zap.Stringer("meme_type", token.MemeType))
	return token, nil
}

// GetPurchase returns a purchase by id
func (e *Engine) GetPurchase(ctx context.Context, purchaseID uint64) (*domain.CasePurchase, error) {
	var purchase *domain.CasePurchase
	err := e.ledger.Read(ctx, func(s *ledger.Session) error {
		row, err := s.Tx().GetPurchase(ctx, purchaseID)
		if err != nil {
			return err
		}
		if row == nil {
			return fmt.Errorf("%w: %d", domain.ErrUnknownPurchase, purchaseID)
		}
		purchase, err = types.PurchaseToDomain(row)
		return err
	})
	return purchase, err
}

// PurchasesOf lists the purchases of a buyer, oldest first
func (e *Engine) PurchasesOf(ctx context.Context, buyer common.Address, limit int) ([]domain.CasePurchase, error) {
	key := types.AddressKey(buyer)
	return e.purchases(ctx, store.PurchaseFilter{Buyer: &key, Limit: limit})
}

// PendingPurchases lists pending purchases whose reveal round is already sealed,
// ordered by id and starting after afterID
func (e *Engine) PendingPurchases(ctx context.Context, afterID uint64, limit int) ([]domain.CasePurchase, error) {
	height, err := e.beacon.Height(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read beacon height: %w", err)
	}

	status := schema.CasePurchaseStatusPending
	return e.purchases(ctx, store.PurchaseFilter{
		Status:          &status,
		MaxRevealHeight: &height,
		AfterID:         afterID,
		Limit:           limit,
	})
}

func (e *Engine) purchases(ctx context.Context, filter store.PurchaseFilter) ([]domain.CasePurchase, error) {
	purchases := []domain.CasePurchase{}
	err := e.ledger.Read(ctx, func(s *ledger.Session) error {
		rows, err := s.Tx().GetPurchases(ctx, filter)
		if err != nil {
			return err
		}
		for i := range rows {
			p, err := types.PurchaseToDomain(&rows[i])
			if err != nil {
				return err
			}
			purchases = append(purchases, *p)
		}
		return nil
	})
	return purchases, err
}

// Price returns the price of a case type
func (e *Engine) Price(caseType domain.CaseType) (*big.Int, error) {
	tier, ok := e.config.Catalogue[caseType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCaseType, caseType)
	}
	return new(big.Int).Set(tier.Price), nil
}
