package ledger

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/store"
)

// Config holds the ledger configuration
type Config struct {
	// Admin is the only address allowed to change authorizations and move value in or out
	Admin common.Address
	// MaxLevel caps token levels
	MaxLevel uint32
	// MetadataBaseURI is prefixed to the token id when a mint carries no metadata URI
	MetadataBaseURI string
}

// Ledger is the token ledger together with the authorization registry and native value accounts.
// All state lives in the store; the ledger itself is stateless.
type Ledger struct {
	store           store.Store
	admin           common.Address
	maxLevel        uint32
	metadataBaseURI string
	clock           adapter.Clock
	json            adapter.JSON
}

// New creates a new ledger
func New(cfg Config, st store.Store, clock adapter.Clock, jsonAdapter adapter.JSON) *Ledger {
	maxLevel := cfg.MaxLevel
	if maxLevel == 0 {
		maxLevel = domain.DEFAULT_MAX_LEVEL
	}
	return &Ledger{
		store:           st,
		admin:           cfg.Admin,
		maxLevel:        maxLevel,
		metadataBaseURI: cfg.MetadataBaseURI,
		clock:           clock,
		json:            jsonAdapter,
	}
}

// Admin returns the administrator address
func (l *Ledger) Admin() common.Address {
	return l.admin
}

// MaxLevel returns the level cap
func (l *Ledger) MaxLevel() uint32 {
	return l.maxLevel
}

// Store returns the backing store
func (l *Ledger) Store() store.Store {
	return l.store
}

// With binds the ledger to a transaction
func (l *Ledger) With(tx store.Tx) *Session {
	return &Session{l: l, tx: tx}
}

// Update runs fn in a read-write transaction
func (l *Ledger) Update(ctx context.Context, fn func(s *Session) error) error {
	return l.store.Transact(ctx, func(tx store.Tx) error {
		return fn(l.With(tx))
	})
}

// Read runs fn in a read-only transaction
func (l *Ledger) Read(ctx context.Context, fn func(s *Session) error) error {
	return l.store.View(ctx, func(tx store.Tx) error {
		return fn(l.With(tx))
	})
}

// Mint creates a token as caller. The caller must be authorized.
func (l *Ledger) Mint(ctx context.Context, caller common.Address, to common.Address, attrs domain.TokenAttributes) (*domain.Token, error) {
	var token *domain.Token
	err := l.Update(ctx, func(s *Session) error {
		var err error
		token, err = s.Mint(ctx, caller, to, attrs)
		return err
	})
	if err != nil {
		logger.DebugCtx(ctx, "Mint rejected", logger.Address("caller", caller), zap.Error(err))
		return nil, err
	}

	logger.InfoCtx(ctx, "Token minted",
		logger.TokenID(token.ID),
		logger.Address("owner", to),
		logger.Address("caller", caller),
		zap.Stringer("rarity", token.Rarity),
		zap.Stringer("meme_type", token.MemeType))
	return token, nil
}

// Burn destroys a token as caller
func (l *Ledger) Burn(ctx context.Context, caller common.Address, id uint64) error {
	err := l.Update(ctx, func(s *Session) error {
		return s.Burn(ctx, caller, id)
	})
	if err != nil {
		logger.DebugCtx(ctx, "Burn rejected", logger.TokenID(id), logger.Address("caller", caller), zap.Error(err))
		return err
	}

	logger.InfoCtx(ctx, "Token burned", logger.TokenID(id), logger.Address("caller", caller))
	return nil
}

// TransferFrom moves a token owned by caller to another address
func (l *Ledger) TransferFrom(ctx context.Context, caller common.Address, id uint64, to common.Address) error {
	err := l.Update(ctx, func(s *Session) error {
		return s.TransferFrom(ctx, caller, id, to)
	})
	if err != nil {
		logger.DebugCtx(ctx, "Transfer rejected", logger.TokenID(id), logger.Address("caller", caller), zap.Error(err))
		return err
	}

	logger.InfoCtx(ctx, "Token transferred", logger.TokenID(id), logger.Address("from", caller), logger.Address("to", to))
	return nil
}

// SetAuthorizedMinter flips the authorization flag of addr as caller
func (l *Ledger) SetAuthorizedMinter(ctx context.Context, caller common.Address, addr common.Address, authorized bool) error {
	var changed bool
	err := l.Update(ctx, func(s *Session) error {
		var err error
		changed, err = s.SetAuthorizedMinter(ctx, caller, addr, authorized)
		return err
	})
	if err != nil {
		logger.DebugCtx(ctx, "Authorization change rejected", logger.Address("caller", caller), zap.Error(err))
		return err
	}

	if changed {
		logger.InfoCtx(ctx, "Authorization changed", logger.Address("address", addr), zap.Bool("authorized", authorized))
	}
	return nil
}

// IsAuthorized reports whether addr is authorized
func (l *Ledger) IsAuthorized(ctx context.Context, addr common.Address) (bool, error) {
	var ok bool
	err := l.Read(ctx, func(s *Session) error {
		var err error
		ok, err = s.IsAuthorized(ctx, addr)
		return err
	})
	return ok, err
}

// ListAuthorized lists the authorized addresses
func (l *Ledger) ListAuthorized(ctx context.Context) ([]common.Address, error) {
	var addrs []common.Address
	err := l.Read(ctx, func(s *Session) error {
		var err error
		addrs, err = s.ListAuthorized(ctx)
		return err
	})
	return addrs, err
}

// GetToken returns the full record of a live token
func (l *Ledger) GetToken(ctx context.Context, id uint64) (*domain.Token, error) {
	var token *domain.Token
	err := l.Read(ctx, func(s *Session) error {
		var err error
		token, err = s.GetToken(ctx, id)
		return err
	})
	return token, err
}

// GetMetadata returns the game attributes of a live token
func (l *Ledger) GetMetadata(ctx context.Context, id uint64) (domain.TokenMetadata, error) {
	var md domain.TokenMetadata
	err := l.Read(ctx, func(s *Session) error {
		var err error
		md, err = s.GetMetadata(ctx, id)
		return err
	})
	return md, err
}

// OwnerOf returns the owner of a live token
func (l *Ledger) OwnerOf(ctx context.Context, id uint64) (common.Address, error) {
	var owner common.Address
	err := l.Read(ctx, func(s *Session) error {
		var err error
		owner, err = s.OwnerOf(ctx, id)
		return err
	})
	return owner, err
}

// TokensOfOwner returns the ownership index of addr
func (l *Ledger) TokensOfOwner(ctx context.Context, addr common.Address) ([]uint64, error) {
	var ids []uint64
	err := l.Read(ctx, func(s *Session) error {
		var err error
		ids, err = s.TokensOfOwner(ctx, addr)
		return err
	})
	return ids, err
}

// BalanceOf returns the native balance of addr
func (l *Ledger) BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	var balance *big.Int
	err := l.Read(ctx, func(s *Session) error {
		var err error
		balance, err = s.BalanceOf(ctx, addr)
		return err
	})
	return balance, err
}

// Deposit credits an account as the administrator
func (l *Ledger) Deposit(ctx context.Context, caller common.Address, to common.Address, amount *big.Int) error {
	err := l.Update(ctx, func(s *Session) error {
		return s.Deposit(ctx, caller, to, amount)
	})
	if err != nil {
		logger.DebugCtx(ctx, "Deposit rejected", logger.Address("caller", caller), zap.Error(err))
		return err
	}

	logger.InfoCtx(ctx, "Account credited", logger.Address("to", to), logger.Wei("value_wei", amount))
	return nil
}

// Withdraw debits an account as the administrator
func (l *Ledger) Withdraw(ctx context.Context, caller common.Address, from common.Address, to common.Address, amount *big.Int) error {
	err := l.Update(ctx, func(s *Session) error {
		return s.Withdraw(ctx, caller, from, to, amount)
	})
	if err != nil {
		logger.DebugCtx(ctx, "Withdrawal rejected", logger.Address("caller", caller), zap.Error(err))
		return err
	}

	logger.InfoCtx(ctx, "Account debited", logger.Address("from", from), logger.Address("to", to), logger.Wei("value_wei", amount))
	return nil
}
