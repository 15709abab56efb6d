package messaging

import (
	"context"

	"github.com/feral-file/brainrot-ledger/internal/domain"
)

// Publisher defines the interface for publishing ledger events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a committed ledger event. Publishing the same event twice
	// must be safe: consumers deduplicate on the event id. The relay publishes the
	// events of one token in order; consumers needing a total order sort on sequence.
	PublishEvent(ctx context.Context, event *domain.LedgerEvent) error
	// Close closes the connection
	Close()
}
