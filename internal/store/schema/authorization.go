package schema

import "time"

// Authorization represents the authorizations table - addresses allowed to mint, burn and mutate tokens
type Authorization struct {
	// Address is the EIP-55 address of the entry
	Address string `gorm:"column:address;primaryKey;type:text"`
	// Authorized is the current flag; absent rows mean false
	Authorized bool `gorm:"column:authorized;not null;default:false"`
	// UpdatedAt is the timestamp of the last flip
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Authorization model
func (Authorization) TableName() string {
	return "authorizations"
}
