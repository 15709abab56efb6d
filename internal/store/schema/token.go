package schema

import (
	"time"
)

// Token represents the tokens table - one row per minted token, kept after burn so ids are never reused
type Token struct {
	// ID is the sequential token id assigned at mint time starting from 1
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// OwnerAddress is the EIP-55 address of the current owner (nil once burned)
	OwnerAddress *string `gorm:"column:owner_address;type:text;index"`
	// Burned indicates whether the token has been permanently destroyed
	Burned bool `gorm:"column:burned;not null;default:false"`
	// MemeType is the meme identity, immutable after mint
	MemeType int16 `gorm:"column:meme_type;not null;type:smallint"`
	// Rarity is the tier (0 common .. 3 legendary), immutable after mint
	Rarity int16 `gorm:"column:rarity;not null;type:smallint;index"`
	// ColorVariant is the cosmetic colour index, immutable after mint
	ColorVariant int16 `gorm:"column:color_variant;not null;type:smallint"`
	// Level is the current level, only ever increases
	Level int64 `gorm:"column:level;not null;default:1"`
	// MetadataURI points at the off-chain descriptive data
	MetadataURI string `gorm:"column:metadata_uri;not null;type:text"`
	// BurnedAt is the timestamp of the burn
	BurnedAt *time.Time `gorm:"column:burned_at;type:timestamptz"`
	// CreatedAt is the mint timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last ownership or level change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Token model
func (Token) TableName() string {
	return "tokens"
}
