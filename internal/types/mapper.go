package types

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/store/schema"
)

// TokenToDomain converts a live token row to the domain token
func TokenToDomain(t *schema.Token) *domain.Token {
	return &domain.Token{
		ID:           t.ID,
		Owner:        common.HexToAddress(SafeString(t.OwnerAddress)),
		MemeType:     domain.MemeType(t.MemeType),     //nolint:gosec,G115
		Rarity:       domain.Rarity(t.Rarity),         //nolint:gosec,G115
		ColorVariant: uint8(t.ColorVariant),           //nolint:gosec,G115
		Level:        uint32(t.Level),                 //nolint:gosec,G115
		MetadataURI:  t.MetadataURI,
		MintedAt:     t.CreatedAt,
	}
}

// ListingToDomain converts a listing row to the domain listing
func ListingToDomain(l *schema.Listing) (*domain.Listing, error) {
	price, ok := new(big.Int).SetString(l.Price, 10)
	if !ok {
		return nil, fmt.Errorf("invalid listing price %q for token %d", l.Price, l.TokenID)
	}
	return &domain.Listing{
		TokenID:  l.TokenID,
		Seller:   common.HexToAddress(l.SellerAddress),
		Price:    price,
		ListedAt: l.CreatedAt,
	}, nil
}

// PurchaseToDomain converts a case purchase row to the domain purchase
func PurchaseToDomain(p *schema.CasePurchase) (*domain.CasePurchase, error) {
	paid, ok := new(big.Int).SetString(p.Paid, 10)
	if !ok {
		return nil, fmt.Errorf("invalid paid amount %q for purchase %d", p.Paid, p.ID)
	}
	return &domain.CasePurchase{
		ID:           p.ID,
		Buyer:        common.HexToAddress(p.BuyerAddress),
		CaseType:     domain.CaseType(p.CaseType),
		Paid:         paid,
		RevealHeight: p.RevealHeight,
		Status:       PurchaseStatusToDomain(p.Status),
		TokenID:      p.TokenID,
		CreatedAt:    p.CreatedAt,
		OpenedAt:     p.OpenedAt,
	}, nil
}

// PurchaseStatusToDomain converts a stored purchase status to the domain status
func PurchaseStatusToDomain(status schema.CasePurchaseStatus) domain.PurchaseStatus {
	switch status {
	case schema.CasePurchaseStatusOpened:
		return domain.PurchaseStatusOpened
	default:
		return domain.PurchaseStatusPending
	}
}

// LedgerEventToDomain converts an outbox row to the published event
func LedgerEventToDomain(e *schema.LedgerEvent) *domain.LedgerEvent {
	return &domain.LedgerEvent{
		EventID:   e.EventID,
		Sequence:  e.ID,
		Type:      domain.EventType(e.EventType),
		TokenID:   e.TokenID,
		Actor:     e.Actor,
		Payload:   json.RawMessage(e.Payload),
		Digest:    e.Digest,
		CreatedAt: e.CreatedAt,
	}
}
