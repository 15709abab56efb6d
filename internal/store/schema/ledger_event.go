package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEvent represents the ledger_events table - the outbox of committed ledger operations
type LedgerEvent struct {
	// ID is an auto-incrementing sequence number giving the commit order
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// EventID is a unique identifier for this event (ULID for time-sortable uniqueness)
	EventID string `gorm:"column:event_id;not null;uniqueIndex;type:varchar(26)"`
	// EventType is the type of event (e.g., "token.minted")
	EventType string `gorm:"column:event_type;not null;type:varchar(50)"`
	// TokenID is the token the event is about, if any
	TokenID *uint64 `gorm:"column:token_id;index"`
	// Actor is the address that triggered the operation
	Actor string `gorm:"column:actor;not null;type:text"`
	// Payload is the canonical JSON payload of the event
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// Digest is the keccak256 hex digest of the canonical payload
	Digest string `gorm:"column:digest;not null;type:varchar(66)"`
	// CreatedAt is the commit timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// PublishedAt is set once the relay has published the event
	PublishedAt *time.Time `gorm:"column:published_at;type:timestamptz;index"`
}

// TableName specifies the table name for the LedgerEvent model
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
