package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/logger"
	"github.com/feral-file/brainrot-ledger/internal/messaging"
	"github.com/feral-file/brainrot-ledger/internal/store"
	"github.com/feral-file/brainrot-ledger/internal/store/schema"
	"github.com/feral-file/brainrot-ledger/internal/types"
)

// EventRelayConfig holds configuration for the event relay sweeper
type EventRelayConfig struct {
	BatchSize      int           // Events relayed per cycle
	WorkerPoolSize int           // Concurrent publishes
	Interval       time.Duration // Sleep between cycles when the outbox is drained
	MaxElapsed     time.Duration // Retry budget for a single publish
}

// eventRelay publishes committed ledger events from the outbox to the message broker
type eventRelay struct {
	config    *EventRelayConfig
	store     store.Store
	publisher messaging.Publisher
	clock     adapter.Clock
	pool      pond.Pool
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewEventRelay creates a new event relay sweeper
func NewEventRelay(config *EventRelayConfig, st store.Store, publisher messaging.Publisher, clock adapter.Clock) Sweeper {
	return &eventRelay{
		config:    config,
		store:     st,
		publisher: publisher,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *eventRelay) Name() string {
	return "event-relay"
}

// Start begins the relay loop
func (s *eventRelay) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting event relay",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("interval", s.config.Interval),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)
	defer s.pool.StopAndWait()

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Event relay stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Event relay stop requested")
			return nil
		default:
			relayed, err := s.relayBatch(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}
			// keep draining while full batches come back
			if err == nil && relayed == s.config.BatchSize {
				continue
			}
			if !s.sleep(ctx, s.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the relay
func (s *eventRelay) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping event relay")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Event relay stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Event relay stop interrupted by context timeout")
		return ctx.Err()
	}
}

// relayBatch publishes one batch of unpublished events and marks the successful ones.
// Events that still fail after retries stay in the outbox for the next cycle.
func (s *eventRelay) relayBatch(ctx context.Context) (int, error) {
	events, err := s.store.GetUnpublishedEvents(ctx, s.config.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to get unpublished events: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	var mu sync.Mutex
	published := make([]uint64, 0, len(events))

	// events of one token are published in sequence order by a single task;
	// once one fails the rest of its chain waits in the outbox for the next cycle
	group := s.pool.NewGroup()
	for _, chain := range chainsByToken(events) {
		group.Submit(func() {
			for _, event := range chain {
				if err := s.publishWithRetry(ctx, event.EventID, func() error {
					return s.publisher.PublishEvent(ctx, event)
				}); err != nil {
					logger.ErrorCtx(ctx, fmt.Errorf("failed to relay event: %w", err),
						zap.String("event_id", event.EventID),
						zap.Uint64("sequence", event.Sequence))
					return
				}
				mu.Lock()
				published = append(published, event.Sequence)
				mu.Unlock()
			}
		})
	}
	if err := group.Wait(); err != nil {
		return 0, err
	}

	if len(published) > 0 {
		if err := s.store.MarkEventsPublished(ctx, published, s.clock.Now().UTC()); err != nil {
			return 0, fmt.Errorf("failed to mark events published: %w", err)
		}
	}

	logger.InfoCtx(ctx, "Relayed ledger events",
		zap.Int("published", len(published)),
		zap.Int("failed", len(events)-len(published)))

	if len(published) < len(events) {
		return len(published), fmt.Errorf("%d of %d events not relayed", len(events)-len(published), len(events))
	}
	return len(published), nil
}

// chainsByToken splits outbox rows, already in sequence order, into per-token chains.
// Events without a token (account movements, purchases) form one chain of their own.
func chainsByToken(events []schema.LedgerEvent) [][]*domain.LedgerEvent {
	index := make(map[uint64]int)
	var chains [][]*domain.LedgerEvent
	for i := range events {
		event := types.LedgerEventToDomain(&events[i])
		var key uint64
		if event.TokenID != nil {
			key = *event.TokenID
		}
		pos, ok := index[key]
		if !ok {
			pos = len(chains)
			index[key] = pos
			chains = append(chains, nil)
		}
		chains[pos] = append(chains[pos], event)
	}
	return chains
}

// publishWithRetry retries a publish with exponential backoff
func (s *eventRelay) publishWithRetry(ctx context.Context, eventID string, publish func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 5 * time.Second
	b.MaxElapsedTime = s.config.MaxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Event publish failed, retrying",
			zap.String("event_id", eventID),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(publish, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	}
	return nil
}

// sleep sleeps for the given duration but can be interrupted.
// Returns true if sleep completed normally.
func (s *eventRelay) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
