package schema

import (
	"time"
)

// Account represents the accounts table - native value balances used to settle payments
type Account struct {
	// Address is the EIP-55 address of the account holder
	Address string `gorm:"column:address;primaryKey;type:text"`
	// Balance is the balance in wei (stored as string to support up to 78 digits)
	Balance string `gorm:"column:balance;not null;type:numeric(78,0);default:0"`
	// CreatedAt is the timestamp when this account was first credited
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp of the last balance change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
