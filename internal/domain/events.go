package domain

import (
	"encoding/json"
	"time"
)

// EventType is the type of a committed ledger event
type EventType string

const (
	EventTypeTokenMinted          EventType = "token.minted"
	EventTypeTokenBurned          EventType = "token.burned"
	EventTypeTokenTransferred     EventType = "token.transferred"
	EventTypeTokenLevelChanged    EventType = "token.level_changed"
	EventTypeAuthorizationChanged EventType = "authorization.changed"
	EventTypeCasePurchased        EventType = "case.purchased"
	EventTypeCaseOpened           EventType = "case.opened"
	EventTypeBurnUpgraded         EventType = "burn.upgraded"
	EventTypeListingCreated       EventType = "listing.created"
	EventTypeListingCancelled     EventType = "listing.cancelled"
	EventTypeListingSold          EventType = "listing.sold"
	EventTypeAccountDeposited     EventType = "account.deposited"
	EventTypeAccountWithdrawn     EventType = "account.withdrawn"
)

// LedgerEvent is the message published for every committed ledger event
type LedgerEvent struct {
	EventID   string          `json:"event_id"`
	Sequence  uint64          `json:"sequence"`
	Type      EventType       `json:"event_type"`
	TokenID   *uint64         `json:"token_id,omitempty"`
	Actor     string          `json:"actor"`
	Payload   json.RawMessage `json:"payload"`
	Digest    string          `json:"digest"`
	CreatedAt time.Time       `json:"created_at"`
}
