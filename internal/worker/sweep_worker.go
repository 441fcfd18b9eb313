package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/fortunaworks/spinvault/internal/logger"
	"github.com/fortunaworks/spinvault/internal/metrics"
	"github.com/fortunaworks/spinvault/internal/repository"
)

// SweepJob counts outstanding and stale pending spins and publishes the
// numbers as gauges. Randomness requests carry no deadline, so a stuck
// request can only be observed, not expired; the sweep is strictly
// report-only.
type SweepJob struct {
	pending    repository.Pending
	staleAfter time.Duration
}

// Process implements [Job].
func (j *SweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgSweepStarting)

	total, err := j.pending.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", LogMsgSweepFailed, err)
	}

	stale, err := j.pending.CountStalePending(ctx, time.Now().Add(-j.staleAfter))
	if err != nil {
		return fmt.Errorf("%s: %w", LogMsgSweepFailed, err)
	}

	metrics.PendingSpins.Set(float64(total))
	metrics.PendingSpinsStale.Set(float64(stale))

	if stale > 0 {
		log.Warn(LogMsgStalePendingFound, "stale", stale, "total", total, "stale_after", j.staleAfter)
	} else {
		log.Debug(LogMsgSweepCompleted, "total", total)
	}

	return nil
}

// StalePendingSweeper periodically enqueues a sweep of the pending spin
// store onto the worker pool.
type StalePendingSweeper struct {
	pool     *Pool
	job      *SweepJob
	interval time.Duration
	shutdown chan struct{}
	done     chan struct{}
}

// NewStalePendingSweeper creates a sweeper that runs every interval
func NewStalePendingSweeper(pool *Pool, pending repository.Pending, staleAfter, interval time.Duration) *StalePendingSweeper {
	return &StalePendingSweeper{
		pool:     pool,
		job:      &SweepJob{pending: pending, staleAfter: staleAfter},
		interval: interval,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start begins the periodic sweep loop
func (s *StalePendingSweeper) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.pool.Enqueue(s.job)
			case <-s.shutdown:
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to exit
func (s *StalePendingSweeper) Stop() {
	close(s.shutdown)
	<-s.done
	logger.Info(LogMsgSweeperShutDown)
}
