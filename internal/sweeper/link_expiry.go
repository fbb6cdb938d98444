package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/citypass-labs/ticketd/internal/adapter"
	"github.com/citypass-labs/ticketd/internal/domain"
	"github.com/citypass-labs/ticketd/internal/logger"
	"github.com/citypass-labs/ticketd/internal/store"
)

const (
	SWEEP_CYCLE_INTERVAL = 5 * time.Minute // Time to sleep between sweep cycles
)

// LinkExpirySweeperConfig holds configuration for the link expiry sweeper
type LinkExpirySweeperConfig struct {
	BatchSize      int // Links to expire per batch
	WorkerPoolSize int // Concurrent workers
}

// linkExpirySweeper implements the Sweeper interface for transfer link expiry.
// Redeem already expires links lazily; the sweeper catches links nobody ever
// tries to redeem so they don't sit in the active state forever.
type linkExpirySweeper struct {
	config    *LinkExpirySweeperConfig
	store     store.Store
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewLinkExpirySweeper creates a new transfer link expiry sweeper
func NewLinkExpirySweeper(
	config *LinkExpirySweeperConfig,
	st store.Store,
	clock adapter.Clock,
) Sweeper {
	return &linkExpirySweeper{
		config:    config,
		store:     st,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *linkExpirySweeper) Name() string {
	return "link-expiry-sweeper"
}

// Start begins the sweeper's main loop
func (s *linkExpirySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting link expiry sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Link expiry sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Link expiry sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *linkExpirySweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *linkExpirySweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping link expiry sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Link expiry sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Link expiry sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs a single sweep cycle
func (s *linkExpirySweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	links, err := s.store.ListExpiredActiveLinks(ctx, startTime, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list expired transfer links: %w", err)
	}

	if len(links) == 0 {
		// Sleep to avoid a tight loop when nothing is due
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err()
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found expired links to sweep", zap.Int("count", len(links)))

	var expiredCount, lostCount atomic.Int32

	for _, link := range links {
		token := link.Token
		s.pool.Submit(func() {
			err := s.store.MarkTransferLinkExpired(ctx, token)
			switch {
			case err == nil:
				expiredCount.Add(1)
			case errors.Is(err, domain.ErrLinkFinalized):
				// A redeem or cancel won the race between list and mark
				lostCount.Add(1)
			default:
				logger.ErrorCtx(ctx, err, zap.String("token", token))
			}
		})
	}

	// Wait for all expirations to complete
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("listed", len(links)),
		zap.Int32("expired", expiredCount.Load()),
		zap.Int32("already_finalized", lostCount.Load()),
	)

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns true if the sleep completed.
func (s *linkExpirySweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
