package schema

import "time"

// CasePurchaseStatus is the status of a case purchase
type CasePurchaseStatus string

const (
	// CasePurchaseStatusPending is a paid purchase waiting for its reveal
	CasePurchaseStatusPending CasePurchaseStatus = "pending"
	// CasePurchaseStatusOpened is a purchase resolved into a minted token
	CasePurchaseStatusOpened CasePurchaseStatus = "opened"
)

// CasePurchase represents the case_purchases table - paid cases and their resolution
type CasePurchase struct {
	// ID is the sequential purchase id starting from 1
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// BuyerAddress is the EIP-55 address that paid for the case
	BuyerAddress string `gorm:"column:buyer_address;not null;type:text;index"`
	// CaseType is the purchased case (bronze, silver, gold)
	CaseType string `gorm:"column:case_type;not null;type:text"`
	// Paid is the value attached to the purchase in wei
	Paid string `gorm:"column:paid;not null;type:numeric(78,0)"`
	// RevealHeight is the beacon height whose seed decides the reward
	RevealHeight uint64 `gorm:"column:reveal_height;not null"`
	// Status indicates the current status: pending, opened
	Status CasePurchaseStatus `gorm:"column:status;not null;type:text;default:pending;index"`
	// TokenID is the minted token once opened
	TokenID *uint64 `gorm:"column:token_id"`
	// CreatedAt is the purchase timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// OpenedAt is the timestamp of the reveal
	OpenedAt *time.Time `gorm:"column:opened_at;type:timestamptz"`
}

// TableName specifies the table name for the CasePurchase model
func (CasePurchase) TableName() string {
	return "case_purchases"
}
