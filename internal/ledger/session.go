package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/store"
	"github.com/feral-file/brainrot-ledger/internal/store/schema"
	"github.com/feral-file/brainrot-ledger/internal/types"
)

// Session applies ledger operations inside one store transaction.
// Engines compose several session calls so that they commit or revert together.
type Session struct {
	l  *Ledger
	tx store.Tx
}

// IsAuthorized reports whether addr may mint, burn and mutate tokens
func (s *Session) IsAuthorized(ctx context.Context, addr common.Address) (bool, error) {
	return s.tx.IsAuthorized(ctx, types.AddressKey(addr))
}

// SetAuthorizedMinter flips the authorization flag of addr. Only the administrator may call it.
// Setting the current value again is a no-op.
func (s *Session) SetAuthorizedMinter(ctx context.Context, caller common.Address, addr common.Address, authorized bool) (changed bool, err error) {
	if caller != s.l.admin {
		return false, domain.ErrUnauthorized
	}
	if domain.IsZeroAddress(addr) {
		return false, domain.ErrInvalidAddress
	}

	current, err := s.IsAuthorized(ctx, addr)
	if err != nil {
		return false, err
	}
	if current == authorized {
		return false, nil
	}

	if err := s.tx.SetAuthorization(ctx, types.AddressKey(addr), authorized); err != nil {
		return false, err
	}
	return true, s.record(ctx, domain.EventTypeAuthorizationChanged, nil, caller, map[string]interface{}{
		"address":    addr.Hex(),
		"authorized": authorized,
	})
}

// ListAuthorized lists the currently authorized addresses
func (s *Session) ListAuthorized(ctx context.Context) ([]common.Address, error) {
	keys, err := s.tx.ListAuthorized(ctx)
	if err != nil {
		return nil, err
	}
	addrs := make([]common.Address, 0, len(keys))
	for _, k := range keys {
		addrs = append(addrs, common.HexToAddress(k))
	}
	return addrs, nil
}

// Mint creates a new token owned by to with level 1 and the next sequential id
func (s *Session) Mint(ctx context.Context, caller common.Address, to common.Address, attrs domain.TokenAttributes) (*domain.Token, error) {
	ok, err := s.IsAuthorized(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if domain.IsZeroAddress(to) {
		return nil, domain.ErrInvalidAddress
	}
	if !attrs.MemeType.Valid() || !attrs.Rarity.Valid() || attrs.ColorVariant >= domain.COLOR_VARIANT_COUNT {
		return nil, fmt.Errorf("%w: meme=%d rarity=%d color=%d", domain.ErrInvalidAttributes, attrs.MemeType, attrs.Rarity, attrs.ColorVariant)
	}

	id, err := s.tx.NextSequence(ctx, store.SequenceTokenID)
	if err != nil {
		return nil, err
	}

	uri := attrs.MetadataURI
	if uri == "" {
		uri = s.l.metadataBaseURI + strconv.FormatUint(id, 10)
	}

	owner := types.AddressKey(to)
	row := &schema.Token{
		ID:           id,
		OwnerAddress: &owner,
		MemeType:     int16(attrs.MemeType),
		Rarity:       int16(attrs.Rarity),
		ColorVariant: int16(attrs.ColorVariant),
		Level:        int64(domain.INITIAL_TOKEN_LEVEL),
		MetadataURI:  uri,
		CreatedAt:    s.l.clock.Now().UTC(),
	}
	if err := s.tx.CreateToken(ctx, row); err != nil {
		return nil, err
	}
	if err := s.tx.AppendOwnedToken(ctx, owner, id); err != nil {
		return nil, err
	}

	token := types.TokenToDomain(row)
	err = s.record(ctx, domain.EventTypeTokenMinted, &id, caller, map[string]interface{}{
		"to":            to.Hex(),
		"meme_type":     token.MemeType.String(),
		"rarity":        token.Rarity.String(),
		"color_variant": token.ColorVariant,
		"level":         token.Level,
		"metadata_uri":  token.MetadataURI,
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Burn destroys a token. The caller must own it or be authorized.
func (s *Session) Burn(ctx context.Context, caller common.Address, id uint64) error {
	row, err := s.liveToken(ctx, id)
	if err != nil {
		return err
	}

	owner := *row.OwnerAddress
	if owner != types.AddressKey(caller) {
		ok, err := s.IsAuthorized(ctx, caller)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotOwnerOrAuthorized
		}
	}

	if err := s.tx.RemoveOwnedToken(ctx, owner, id); err != nil {
		return err
	}
	if err := s.tx.DeleteListing(ctx, id); err != nil {
		return err
	}

	now := s.l.clock.Now().UTC()
	row.OwnerAddress = nil
	row.Burned = true
	row.BurnedAt = &now
	if err := s.tx.UpdateToken(ctx, row); err != nil {
		return err
	}

	return s.record(ctx, domain.EventTypeTokenBurned, &id, caller, map[string]interface{}{
		"owner": owner,
	})
}

// GetToken returns the full record of a live token
func (s *Session) GetToken(ctx context.Context, id uint64) (*domain.Token, error) {
	row, err := s.liveToken(ctx, id)
	if err != nil {
		return nil, err
	}
	return types.TokenToDomain(row), nil
}

// GetMetadata returns the game attributes of a live token
func (s *Session) GetMetadata(ctx context.Context, id uint64) (domain.TokenMetadata, error) {
	token, err := s.GetToken(ctx, id)
	if err != nil {
		return domain.TokenMetadata{}, err
	}
	return token.Metadata(), nil
}

// OwnerOf returns the owner of a live token
func (s *Session) OwnerOf(ctx context.Context, id uint64) (common.Address, error) {
	row, err := s.liveToken(ctx, id)
	if err != nil {
		return common.Address{}, err
	}
	return common.HexToAddress(*row.OwnerAddress), nil
}

// TokensOfOwner returns the ownership index of addr. An address owning nothing yields an empty slice.
func (s *Session) TokensOfOwner(ctx context.Context, addr common.Address) ([]uint64, error) {
	ids, err := s.tx.GetOwnedTokens(ctx, types.AddressKey(addr))
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint64{}
	}
	return ids, nil
}

// SetLevel raises the level of a token. The caller must be authorized; the level never decreases
// and never exceeds the configured cap. Setting the current level again is a no-op.
func (s *Session) SetLevel(ctx context.Context, caller common.Address, id uint64, level uint32) error {
	ok, err := s.IsAuthorized(ctx, caller)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}

	row, err := s.liveToken(ctx, id)
	if err != nil {
		return err
	}

	previous := row.Level
	switch {
	case int64(level) < previous:
		return fmt.Errorf("%w: %d is below current level %d", domain.ErrInvalidLevel, level, previous)
	case level > s.l.maxLevel:
		return fmt.Errorf("%w: %d exceeds max level %d", domain.ErrInvalidLevel, level, s.l.maxLevel)
	case int64(level) == previous:
		return nil
	}

	row.Level = int64(level)
	if err := s.tx.UpdateToken(ctx, row); err != nil {
		return err
	}
	return s.record(ctx, domain.EventTypeTokenLevelChanged, &id, caller, map[string]interface{}{
		"from_level": previous,
		"to_level":   level,
	})
}

// Transfer moves a token from one owner to another. It fails with ErrNotTokenOwner when
// from does not currently own the token. Any outstanding listing is cleared.
func (s *Session) Transfer(ctx context.Context, id uint64, from common.Address, to common.Address) error {
	row, err := s.liveToken(ctx, id)
	if err != nil {
		return err
	}
	if *row.OwnerAddress != types.AddressKey(from) {
		return domain.ErrNotTokenOwner
	}
	if domain.IsZeroAddress(to) {
		return domain.ErrInvalidAddress
	}
	if from == to {
		return nil
	}

	fromKey, toKey := types.AddressKey(from), types.AddressKey(to)
	if err := s.tx.RemoveOwnedToken(ctx, fromKey, id); err != nil {
		return err
	}
	if err := s.tx.AppendOwnedToken(ctx, toKey, id); err != nil {
		return err
	}
	if err := s.tx.DeleteListing(ctx, id); err != nil {
		return err
	}

	row.OwnerAddress = &toKey
	if err := s.tx.UpdateToken(ctx, row); err != nil {
		return err
	}

	return s.record(ctx, domain.EventTypeTokenTransferred, &id, from, map[string]interface{}{
		"from": fromKey,
		"to":   toKey,
	})
}

// TransferFrom is the user-initiated transfer: the caller must own the token
func (s *Session) TransferFrom(ctx context.Context, caller common.Address, id uint64, to common.Address) error {
	return s.Transfer(ctx, id, caller, to)
}

// BalanceOf returns the native balance of addr
func (s *Session) BalanceOf(ctx context.Context, addr common.Address) (*big.Int, error) {
	return s.tx.GetBalance(ctx, types.AddressKey(addr))
}

// Pay debits value from the payer and credits it to the payee. A zero value is a no-op.
func (s *Session) Pay(ctx context.Context, from common.Address, to common.Address, value *big.Int) error {
	if value == nil || value.Sign() == 0 {
		return nil
	}
	if value.Sign() < 0 {
		return domain.ErrInvalidAmount
	}
	if from == to {
		return nil
	}

	balance, err := s.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if balance.Cmp(value) < 0 {
		return fmt.Errorf("%w: balance %s below %s", domain.ErrInsufficientFunds, balance, value)
	}

	credit, err := s.BalanceOf(ctx, to)
	if err != nil {
		return err
	}

	if err := s.tx.SetBalance(ctx, types.AddressKey(from), new(big.Int).Sub(balance, value)); err != nil {
		return err
	}
	return s.tx.SetBalance(ctx, types.AddressKey(to), new(big.Int).Add(credit, value))
}

// Deposit credits an account with value entering the system. Only the administrator may call it.
func (s *Session) Deposit(ctx context.Context, caller common.Address, to common.Address, amount *big.Int) error {
	if caller != s.l.admin {
		return domain.ErrUnauthorized
	}
	if domain.IsZeroAddress(to) {
		return domain.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	balance, err := s.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	if err := s.tx.SetBalance(ctx, types.AddressKey(to), balance.Add(balance, amount)); err != nil {
		return err
	}
	return s.record(ctx, domain.EventTypeAccountDeposited, nil, caller, map[string]interface{}{
		"to":     to.Hex(),
		"amount": amount.String(),
	})
}

// Withdraw debits an account for value leaving the system to an external address.
// Only the administrator may call it.
func (s *Session) Withdraw(ctx context.Context, caller common.Address, from common.Address, to common.Address, amount *big.Int) error {
	if caller != s.l.admin {
		return domain.ErrUnauthorized
	}
	if domain.IsZeroAddress(to) {
		return domain.ErrInvalidAddress
	}
	if amount == nil || amount.Sign() <= 0 {
		return domain.ErrInvalidAmount
	}

	balance, err := s.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return fmt.Errorf("%w: balance %s below %s", domain.ErrInsufficientFunds, balance, amount)
	}
	if err := s.tx.SetBalance(ctx, types.AddressKey(from), balance.Sub(balance, amount)); err != nil {
		return err
	}
	return s.record(ctx, domain.EventTypeAccountWithdrawn, nil, caller, map[string]interface{}{
		"from":   from.Hex(),
		"to":     to.Hex(),
		"amount": amount.String(),
	})
}

// Record appends an event to the outbox within the session transaction
func (s *Session) Record(ctx context.Context, eventType domain.EventType, tokenID *uint64, actor common.Address, payload map[string]interface{}) error {
	return s.record(ctx, eventType, tokenID, actor, payload)
}

// Tx exposes the underlying transaction to engines that keep their own tables
func (s *Session) Tx() store.Tx {
	return s.tx
}

// liveToken loads a token row and rejects burned or never-minted ids
func (s *Session) liveToken(ctx context.Context, id uint64) (*schema.Token, error) {
	row, err := s.tx.GetToken(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil || row.Burned || row.OwnerAddress == nil {
		return nil, fmt.Errorf("%w: %d", domain.ErrNonexistentToken, id)
	}
	return row, nil
}
