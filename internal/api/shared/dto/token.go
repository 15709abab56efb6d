package dto

import (
	"time"

	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// TokenResponse represents a live token
type TokenResponse struct {
	ID           uint64    `json:"id"`
	Owner        string    `json:"owner"`
	MemeType     string    `json:"meme_type"`
	Rarity       string    `json:"rarity"`
	ColorVariant uint8     `json:"color_variant"`
	Level        uint32    `json:"level"`
	MetadataURI  string    `json:"metadata_uri"`
	MintedAt     time.Time `json:"minted_at"`
}

// OwnerTokensResponse represents the ownership index of an address
type OwnerTokensResponse struct {
	Owner    string          `json:"owner"`
	TokenIDs []uint64        `json:"token_ids"`
	Tokens   []TokenResponse `json:"tokens"`
}

// UpgradeQuoteResponse represents the fee for a level upgrade
type UpgradeQuoteResponse struct {
	TokenID      uint64 `json:"token_id"`
	CurrentLevel uint32 `json:"current_level"`
	TargetLevel  uint32 `json:"target_level"`
	FeeWei       string `json:"fee_wei"`
}

// MapTokenToDTO maps a domain token to its response
func MapTokenToDTO(t *domain.Token) *TokenResponse {
	return &TokenResponse{
		ID:           t.ID,
		Owner:        t.Owner.Hex(),
		MemeType:     t.MemeType.String(),
		Rarity:       t.Rarity.String(),
		ColorVariant: t.ColorVariant,
		Level:        t.Level,
		MetadataURI:  t.MetadataURI,
		MintedAt:     t.MintedAt,
	}
}
