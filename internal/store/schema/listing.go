package schema

import "time"

// Listing represents the listings table - at most one active listing per token
type Listing struct {
	// TokenID references the listed token
	TokenID uint64 `gorm:"column:token_id;primaryKey;autoIncrement:false"`
	// SellerAddress is the EIP-55 address of the seller
	SellerAddress string `gorm:"column:seller_address;not null;type:text;index"`
	// Price is the asking price in wei
	Price string `gorm:"column:price;not null;type:numeric(78,0)"`
	// CreatedAt is the timestamp when the listing was created or last repriced
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Listing model
func (Listing) TableName() string {
	return "listings"
}
