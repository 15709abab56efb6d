package upgrade

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/ledger"
	"github.com/feral-file/brainrot-ledger/internal/logger"
)

// Config holds the level upgrade gate configuration
type Config struct {
	// Address is the gate's identity: it receives upgrade fees and calls SetLevel
	Address common.Address
	// BaseFee is charged once per upgrade
	BaseFee *big.Int
	// PerLevelFee is charged for every level gained
	PerLevelFee *big.Int
}

// Gate sells level upgrades to token owners
type Gate struct {
	ledger *ledger.Ledger
	config Config
}

// NewGate creates a new level upgrade gate
func NewGate(l *ledger.Ledger, config Config) *Gate {
	if config.BaseFee == nil {
		config.BaseFee = new(big.Int)
	}
	if config.PerLevelFee == nil {
		config.PerLevelFee = new(big.Int)
	}
	return &Gate{ledger: l, config: config}
}

// Address returns the gate address
func (g *Gate) Address() common.Address {
	return g.config.Address
}

// Fee returns the price of raising a token from current to target: base + perLevel * (target - current)
func (g *Gate) Fee(current, target uint32) *big.Int {
	delta := new(big.Int).SetUint64(uint64(target - current))
	fee := new(big.Int).Mul(g.config.PerLevelFee, delta)
	return fee.Add(fee, g.config.BaseFee)
}

// Quote returns the fee for raising a token to target
func (g *Gate) Quote(ctx context.Context, tokenID uint64, target uint32) (*big.Int, error) {
	var fee *big.Int
	err := g.ledger.Read(ctx, func(s *ledger.Session) error {
		token, err := s.GetToken(ctx, tokenID)
		if err != nil {
			return err
		}
		if err := g.checkTarget(token, target); err != nil {
			return err
		}
		fee = g.Fee(token.Level, target)
		return nil
	})
	return fee, err
}

// UpgradeLevel raises a token owned by the caller to target. The whole attached value goes to the gate.
func (g *Gate) UpgradeLevel(ctx context.Context, call domain.Call, tokenID uint64, target uint32) (*domain.Token, error) {
	value := call.AttachedValue()

	var token *domain.Token
	var from uint32
	err := g.ledger.Update(ctx, func(s *ledger.Session) error {
		current, err := s.GetToken(ctx, tokenID)
		if err != nil {
			return err
		}
		if current.Owner != call.Caller {
			return domain.ErrNotTokenOwner
		}
		if err := g.checkTarget(current, target); err != nil {
			return err
		}

		fee := g.Fee(current.Level, target)
		if value.Cmp(fee) < 0 {
			return fmt.Errorf("%w: upgrade to level %d costs %s wei, got %s", domain.ErrInsufficientPayment, target, fee, value)
		}
		if err := s.Pay(ctx, call.Caller, g.config.Address, value); err != nil {
			return err
		}
		if err := s.SetLevel(ctx, g.config.Address, tokenID, target); err != nil {
			return err
		}

		from = current.Level
		token, err = s.GetToken(ctx, tokenID)
		return err
	})
	if err != nil {
		logger.DebugCtx(ctx, "Level upgrade rejected",
			logger.TokenID(tokenID),
			logger.Address("caller", call.Caller),
			zap.Uint32("target_level", target),
			zap.Error(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Token level upgraded",
		logger.TokenID(tokenID),
		logger.Address("owner", call.Caller),
		zap.Uint32("from_level", from),
		zap.Uint32("to_level", target),
		logger.Wei("value_wei", value))
	return token, nil
}

func (g *Gate) checkTarget(token *domain.Token, target uint32) error {
	if target <= token.Level {
		return fmt.Errorf("%w: target %d is not above current level %d", domain.ErrInvalidLevel, target, token.Level)
	}
	if target > g.ledger.MaxLevel() {
		return fmt.Errorf("%w: target %d exceeds max level %d", domain.ErrInvalidLevel, target, g.ledger.MaxLevel())
	}
	return nil
}
