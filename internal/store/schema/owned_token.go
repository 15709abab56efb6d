package schema

// OwnedToken represents the owned_tokens table - the per-owner ownership index.
// Positions of an owner are contiguous from 0; removal moves the last entry into the freed slot.
type OwnedToken struct {
	// OwnerAddress is the EIP-55 address of the owner
	OwnerAddress string `gorm:"column:owner_address;primaryKey;type:text"`
	// Position is the index of the token in the owner's list
	Position int64 `gorm:"column:position;primaryKey"`
	// TokenID references the owned token
	TokenID uint64 `gorm:"column:token_id;not null;uniqueIndex"`
}

// TableName specifies the table name for the OwnedToken model
func (OwnedToken) TableName() string {
	return "owned_tokens"
}
