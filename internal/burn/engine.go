package burn

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/randomness"
)

// Config holds the burn-upgrade engine configuration
type Config struct {
	// Address is the engine's identity: it mints the replacement tokens
	Address common.Address
	// InputsPerRecipe is how many tokens of one rarity are burned for one token of the next
	InputsPerRecipe int
}

// Engine burns sets of same-rarity tokens into one token of the next rarity
type Engine struct {
	ledger *ledger.Ledger
	beacon randomness.Beacon
	config Config
}

// NewEngine creates a new burn-upgrade engine
func NewEngine(l *ledger.Ledger, beacon randomness.Beacon, config Config) *Engine {
	if config.InputsPerRecipe == 0 {
		config.InputsPerRecipe = domain.DEFAULT_RECIPE_INPUT
	}
	return &Engine{ledger: l, beacon: beacon, config: config}
}

// Address returns the engine address
func (e *Engine) Address() common.Address {
	return e.config.Address
}

// InputsPerRecipe returns the number of tokens a recipe consumes
func (e *Engine) InputsPerRecipe() int {
	return e.config.InputsPerRecipe
}

// BurnForUpgrade burns the given tokens, all owned by the caller, and mints one token of the
// next rarity to the caller. The replacement keeps the highest input level. Every burn and
// the mint commit together.
func (e *Engine) BurnForUpgrade(ctx context.Context, call domain.Call, tokenIDs []uint64) (*domain.Token, error) {
	if err := e.checkShape(tokenIDs); err != nil {
		return nil, err
	}

	height, err := e.beacon.Height(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read beacon height: %w", err)
	}
	beaconSeed, err := e.beacon.Seed(ctx, height)
	if err != nil {
		return nil, fmt.Errorf("failed to read beacon seed: %w", err)
	}
	seed := randomness.RecipeSeed(beaconSeed, tokenIDs)

	var token *domain.Token
	err = e.ledger.Update(ctx, func(s *ledger.Session) error {
		rarity, level, err := e.checkInputs(ctx, s, call.Caller, tokenIDs)
		if err != nil {
			return err
		}
		next, ok := rarity.Next()
		if !ok {
			return fmt.Errorf("%w: %s tokens cannot be upgraded", domain.ErrInvalidRecipe, rarity)
		}

		for _, id := range tokenIDs {
			if err := s.Burn(ctx, call.Caller, id); err != nil {
				return err
			}
		}

		attrs, err := randomness.Attributes(seed, next)
		if err != nil {
			return err
		}
		minted, err := s.Mint(ctx, e.config.Address, call.Caller, attrs)
		if err != nil {
			return err
		}
		if level > minted.Level {
			if err := s.SetLevel(ctx, e.config.Address, minted.ID, level); err != nil {
				return err
			}
		}

		token, err = s.GetToken(ctx, minted.ID)
		if err != nil {
			return err
		}

		return s.Record(ctx, domain.EventTypeBurnUpgraded, &token.ID, call.Caller, map[string]interface{}{
			"burned":      tokenIDs,
			"from_rarity": rarity.String(),
			"to_rarity":   next.String(),
			"level":       token.Level,
			"seed":        seed.Hex(),
		})
	})
	if err != nil {
		logger.DebugCtx(ctx, "Burn upgrade rejected",
			logger.Address("caller", call.Caller),
			zap.Uint64s("token_ids", tokenIDs),
			zap.Error(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Tokens burned for upgrade",
		zap.Uint64s("burned", tokenIDs),
		logger.TokenID(token.ID),
		logger.Address("owner", call.Caller),
		zap.Stringer("rarity", token.Rarity),
		zap.Uint32("level", token.Level))
	return token, nil
}

// checkShape validates the input count and rejects duplicate ids
func (e *Engine) checkShape(tokenIDs []uint64) error {
	if len(tokenIDs) != e.config.InputsPerRecipe {
		return fmt.Errorf("%w: need %d tokens, got %d", domain.ErrInvalidRecipe, e.config.InputsPerRecipe, len(tokenIDs))
	}
	seen := make(map[uint64]struct{}, len(tokenIDs))
	for _, id := range tokenIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: token %d listed twice", domain.ErrInvalidRecipe, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// checkInputs verifies ownership and a common rarity, returning that rarity and the highest level
func (e *Engine) checkInputs(ctx context.Context, s *ledger.Session, caller common.Address, tokenIDs []uint64) (domain.Rarity, uint32, error) {
	var rarity domain.Rarity
	var level uint32
	for i, id := range tokenIDs {
		token, err := s.GetToken(ctx, id)
		if err != nil {
			return 0, 0, err
		}
		if token.Owner != caller {
			return 0, 0, fmt.Errorf("%w: token %d", domain.ErrNotTokenOwner, id)
		}
		if i == 0 {
			rarity = token.Rarity
		} else if token.Rarity != rarity {
			return 0, 0, fmt.Errorf("%w: mixed rarities %s and %s", domain.ErrInvalidRecipe, rarity, token.Rarity)
		}
		level = max(level, token.Level)
	}
	return rarity, level, nil
}
