package ledger

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oklog/ulid/v2"
	"gorm.io/datatypes"

	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/store/schema"
)

// record appends a ledger event to the outbox. The payload is stored as canonical JSON
// and its keccak256 digest so consumers can verify it independently of key order.
func (s *Session) record(ctx context.Context, eventType domain.EventType, tokenID *uint64, actor common.Address, payload map[string]interface{}) error {
	body, err := s.l.json.MarshalCanonical(payload)
	if err != nil {
		return fmt.Errorf("failed to canonicalize %s payload: %w", eventType, err)
	}

	now := s.l.clock.Now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), ulid.DefaultEntropy())
	if err != nil {
		return fmt.Errorf("failed to generate event id: %w", err)
	}

	event := &schema.LedgerEvent{
		EventID:   id.String(),
		EventType: string(eventType),
		TokenID:   tokenID,
		Actor:     actor.Hex(),
		Payload:   datatypes.JSON(body),
		Digest:    crypto.Keccak256Hash(body).Hex(),
		CreatedAt: now,
	}
	return s.tx.AppendEvent(ctx, event)
}
