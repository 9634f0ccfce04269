package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/proftrack/internal/domain/subscription"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
)

const sweepTimeout = 2 * time.Minute

// SubscriptionSweeper periodically flips lapsed ACTIVE subscriptions to
// INACTIVE so stored status matches what the gate computes.
type SubscriptionSweeper struct {
	ledger    subscription.Ledger
	schedule  string
	logger    *logger.Logger
	scheduler *cron.Cron
	mu        sync.Mutex
	running   bool
}

// NewSubscriptionSweeper creates a sweeper that runs on schedule, which is a
// standard five field cron expression or a descriptor such as "@every 1h".
func NewSubscriptionSweeper(ledger subscription.Ledger, schedule string, log *logger.Logger) *SubscriptionSweeper {
	return &SubscriptionSweeper{
		ledger:   ledger,
		schedule: schedule,
		logger:   log,
	}
}

// Start registers the sweep and starts the scheduler
func (s *SubscriptionSweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("subscription sweeper is already running")
	}

	s.scheduler = cron.New()
	if _, err := s.scheduler.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	s.scheduler.Start()
	s.running = true

	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Subscription sweeper started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *SubscriptionSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.scheduler.Stop().Done()
	s.running = false
	s.logger.Info("Subscription sweeper stopped")
}

// RunOnce performs a single sweep and returns the number of expired rows
func (s *SubscriptionSweeper) RunOnce(ctx context.Context) int64 {
	if ctx.Err() != nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	n, err := s.ledger.ExpireLapsed(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Subscription sweep failed")
		return 0
	}
	if n > 0 {
		s.logger.WithFields(map[string]interface{}{
			"expired": n,
		}).Info("Expired lapsed subscriptions")
	}
	return n
}
