package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler drives the ingestion job on a fixed cadence. One cycle runs
// immediately at startup, then once per tick. The ticker also acts as the
// minimum spacing between cycle starts: there is no catch-up double-fire
// after an overrun, and at most one cycle runs at a time.
type Scheduler struct {
	ingestion    Ingestion
	interval     time.Duration
	cycleTimeout time.Duration
	logger       *zap.Logger
}

func NewScheduler(ingestion Ingestion, interval, cycleTimeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		ingestion:    ingestion,
		interval:     interval,
		cycleTimeout: cycleTimeout,
		logger:       logger,
	}
}

// Run blocks until ctx is cancelled. Cycle failures of any kind, panics
// included, are logged and never stop the loop; the next tick fires on
// schedule regardless of the previous outcome.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("scheduler starting",
		zap.Duration("interval", s.interval),
		zap.Duration("cycle_timeout", s.cycleTimeout))

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler shutting down")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("ingestion cycle panicked", zap.Any("panic", r))
		}
	}()

	// Bound the whole cycle so one hung fetch cannot delay future ticks
	// indefinitely.
	cycleCtx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()

	if _, err := s.ingestion.RunCycle(cycleCtx); err != nil {
		s.logger.Warn("ingestion cycle failed, waiting for next tick", zap.Error(err))
	}
}
