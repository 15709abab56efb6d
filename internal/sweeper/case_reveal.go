package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/brainrot-ledger/internal/adapter"
	"github.com/feral-file/brainrot-ledger/internal/domain"
	"github.com/feral-file/brainrot-ledger/internal/logger"
)

// CaseOpener is the part of the case engine the reveal keeper drives
//
//go:generate mockgen -source=case_reveal.go -destination=../mocks/case_opener.go -package=mocks -mock_names=CaseOpener=MockCaseOpener
type CaseOpener interface {
	PendingPurchases(ctx context.Context, afterID uint64, limit int) ([]domain.CasePurchase, error)
	OpenCase(ctx context.Context, call domain.Call, purchaseID uint64) (*domain.Token, error)
}

// CaseRevealConfig holds configuration for the case reveal sweeper
type CaseRevealConfig struct {
	// Keeper is the address recorded as the caller of keeper-driven reveals
	Keeper         common.Address
	BatchSize      int
	WorkerPoolSize int
	Interval       time.Duration
}

// caseReveal opens pending case purchases once their reveal round is sealed.
// Opening is permissionless and the minted token always goes to the buyer.
type caseReveal struct {
	config    *CaseRevealConfig
	opener    CaseOpener
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewCaseReveal creates a new case reveal sweeper
func NewCaseReveal(config *CaseRevealConfig, opener CaseOpener, clock adapter.Clock) Sweeper {
	return &caseReveal{
		config:    config,
		opener:    opener,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *caseReveal) Name() string {
	return "case-reveal"
}

// Start begins the reveal loop
func (s *caseReveal) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting case reveal sweeper",
		logger.Address("keeper", s.config.Keeper),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Duration("interval", s.config.Interval),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Case reveal sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Case reveal sweeper stop requested")
			return nil
		default:
			if _, err := s.revealPending(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.ErrorCtx(ctx, err)
			}
			if !s.sleep(ctx, s.config.Interval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the sweeper
func (s *caseReveal) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping case reveal sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Case reveal sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Case reveal sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// revealPending pages through every pending purchase whose round is sealed and
// returns how many were opened. Purchases that cannot be opened are paged past,
// so they never hold back newer ones.
func (s *caseReveal) revealPending(ctx context.Context) (int, error) {
	var (
		afterID uint64
		seen    int
		opened  int
	)
	for {
		pending, err := s.opener.PendingPurchases(ctx, afterID, s.config.BatchSize)
		if err != nil {
			return opened, fmt.Errorf("failed to get pending purchases: %w", err)
		}
		if len(pending) == 0 {
			break
		}

		seen += len(pending)
		opened += s.revealBatch(ctx, pending)
		afterID = pending[len(pending)-1].ID

		if len(pending) < s.config.BatchSize {
			break
		}
		if err := ctx.Err(); err != nil {
			return opened, err
		}
	}

	if seen > 0 {
		logger.InfoCtx(ctx, "Case reveal cycle completed",
			zap.Int("pending", seen),
			zap.Int("opened", opened))
	}
	return opened, nil
}

// revealBatch opens a page of pending purchases concurrently and returns how many were opened
func (s *caseReveal) revealBatch(ctx context.Context, pending []domain.CasePurchase) int {
	var opened atomic.Int32
	call := domain.NewCall(s.config.Keeper)

	pool := pond.NewPool(s.config.WorkerPoolSize, pond.WithContext(ctx))
	for _, purchase := range pending {
		pool.Submit(func() {
			token, err := s.opener.OpenCase(ctx, call, purchase.ID)
			switch {
			case err == nil:
				opened.Add(1)
				logger.DebugCtx(ctx, "Keeper opened case",
					zap.Uint64("purchase_id", purchase.ID),
					logger.TokenID(token.ID))
			case errors.Is(err, domain.ErrUnknownPurchase), errors.Is(err, domain.ErrPurchaseNotReady):
				// opened by the buyer meanwhile, or the round is not sealed yet
			default:
				logger.ErrorCtx(ctx, fmt.Errorf("failed to open case: %w", err), zap.Uint64("purchase_id", purchase.ID))
			}
		})
	}
	pool.StopAndWait()

	return int(opened.Load())
}

// sleep sleeps for the given duration but can be interrupted.
// Returns true if sleep completed normally.
func (s *caseReveal) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
