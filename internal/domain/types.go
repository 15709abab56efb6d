package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// MemeType identifies one of the meme characters a token can embody
type MemeType uint8

const (
	MemePepe MemeType = iota
	MemeDoge
	MemeWojak
	MemeTrollface
	MemeNyanCat
	MemeShiba
	MemeRickroll
	MemeGigachad
)

// MemeTypeCount is the number of meme identities
const MemeTypeCount = 8

var memeTypeNames = [MemeTypeCount]string{
	"pepe",
	"doge",
	"wojak",
	"trollface",
	"nyancat",
	"shiba",
	"rickroll",
	"gigachad",
}

// String returns the lowercase name of the meme type
func (m MemeType) String() string {
	if !m.Valid() {
		return fmt.Sprintf("meme(%d)", uint8(m))
	}
	return memeTypeNames[m]
}

// Valid checks if the meme type is one of the known identities
func (m MemeType) Valid() bool {
	return m < MemeTypeCount
}

// ParseMemeType parses a meme type from its name
func ParseMemeType(s string) (MemeType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range memeTypeNames {
		if name == s {
			return MemeType(i), nil //nolint:gosec,G115
		}
	}
	return 0, fmt.Errorf("unknown meme type: %q", s)
}

// Rarity is the tier of a token. Tiers are ordered from Common to Legendary.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = [...]string{"common", "rare", "epic", "legendary"}

// String returns the lowercase name of the rarity
func (r Rarity) String() string {
	if !r.Valid() {
		return fmt.Sprintf("rarity(%d)", uint8(r))
	}
	return rarityNames[r]
}

// Valid checks if the rarity is a known tier
func (r Rarity) Valid() bool {
	return int(r) < len(rarityNames)
}

// Next returns the tier directly above r. ok is false for Legendary.
func (r Rarity) Next() (next Rarity, ok bool) {
	if r >= RarityLegendary {
		return r, false
	}
	return r + 1, true
}

// ParseRarity parses a rarity from its name
func ParseRarity(s string) (Rarity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range rarityNames {
		if name == s {
			return Rarity(i), nil //nolint:gosec,G115
		}
	}
	return 0, fmt.Errorf("unknown rarity: %q", s)
}

// Rarities lists all tiers in ascending order
func Rarities() []Rarity {
	return []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary}
}

// RarityPools maps each rarity to the meme identities that can appear at that tier
var RarityPools = map[Rarity][]MemeType{
	RarityCommon:    {MemePepe, MemeDoge, MemeWojak},
	RarityRare:      {MemeTrollface, MemeNyanCat},
	RarityEpic:      {MemeShiba, MemeRickroll},
	RarityLegendary: {MemeGigachad},
}

// CaseType identifies a purchasable case
type CaseType string

const (
	CaseBronze CaseType = "bronze"
	CaseSilver CaseType = "silver"
	CaseGold   CaseType = "gold"
)

// TokenAttributes holds the immutable attributes chosen at mint time
type TokenAttributes struct {
	MemeType     MemeType
	Rarity       Rarity
	ColorVariant uint8
	MetadataURI  string
}

// TokenMetadata is the read model returned by GetMetadata
type TokenMetadata struct {
	MemeType     MemeType `json:"meme_type"`
	Rarity       Rarity   `json:"rarity"`
	Level        uint32   `json:"level"`
	ColorVariant uint8    `json:"color_variant"`
}

// Token represents a live game token
type Token struct {
	ID           uint64
	Owner        common.Address
	MemeType     MemeType
	Rarity       Rarity
	ColorVariant uint8
	Level        uint32
	MetadataURI  string
	MintedAt     time.Time
}

// Metadata returns the metadata view of the token
func (t *Token) Metadata() TokenMetadata {
	return TokenMetadata{
		MemeType:     t.MemeType,
		Rarity:       t.Rarity,
		Level:        t.Level,
		ColorVariant: t.ColorVariant,
	}
}

// Listing is a seller's standing offer to sell a token at a fixed price
type Listing struct {
	TokenID  uint64
	Seller   common.Address
	Price    *big.Int
	ListedAt time.Time
}

// PurchaseStatus is the lifecycle state of a case purchase
type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "pending"
	PurchaseStatusOpened  PurchaseStatus = "opened"
)

// CasePurchase records a paid case awaiting (or after) its reveal
type CasePurchase struct {
	ID           uint64
	Buyer        common.Address
	CaseType     CaseType
	Paid         *big.Int
	RevealHeight uint64
	Status       PurchaseStatus
	TokenID      *uint64
	CreatedAt    time.Time
	OpenedAt     *time.Time
}

// Call carries the caller identity and the native value attached to a
// state-mutating operation
type Call struct {
	Caller common.Address
	Value  *big.Int
}

// NewCall creates a call without attached value
func NewCall(caller common.Address) Call {
	return Call{Caller: caller, Value: new(big.Int)}
}

// WithValue returns a copy of the call carrying the given value
func (c Call) WithValue(value *big.Int) Call {
	c.Value = value
	return c
}

// AttachedValue returns the attached value, treating nil as zero
func (c Call) AttachedValue() *big.Int {
	if c.Value == nil {
		return new(big.Int)
	}
	return c.Value
}
