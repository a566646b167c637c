package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/observability"
	"github.com/spec-kit/account-service/internal/repository"
)

// Clock supplies the current time; injectable for deterministic tests.
type Clock func() time.Time

// ExpirySweeper purges accounts that were never activated within the
// retention window.
type ExpirySweeper struct {
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
	retention  time.Duration
	clock      Clock
	running    atomic.Bool
}

// NewExpirySweeper constructs the sweeper. A nil clock defaults to time.Now.
func NewExpirySweeper(accounts repository.AccountRepository, dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics, retention time.Duration, clock Clock) *ExpirySweeper {
	if clock == nil {
		clock = time.Now
	}
	return &ExpirySweeper{
		accounts:   accounts,
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
		retention:  retention,
		clock:      clock,
	}
}

// Sweep removes not-activated accounts created before now minus the
// retention window. Deletion is conditional on the account still being
// not activated, so an account activated between the read and the delete
// is left alone and not counted. Per-account failures are logged and
// skipped; they never abort the rest of the batch.
func (s *ExpirySweeper) Sweep(ctx context.Context, now time.Time) int {
	cutoff := now.Add(-s.retention)

	pending, err := s.accounts.ListPendingCreatedBefore(ctx, cutoff)
	if err != nil {
		s.logger.Error("list not activated accounts", zap.Error(err))
		return 0
	}

	removed := 0
	for _, account := range pending {
		if ctx.Err() != nil {
			break
		}
		deleted, err := s.accounts.DeleteIfNotActivated(ctx, account.ID)
		if err != nil {
			s.logger.Warn("skipping account during sweep",
				zap.String("login", account.Login), zap.Error(err))
			continue
		}
		if !deleted {
			// activated between the read and the delete
			continue
		}

		removed++
		s.logger.Debug("deleting not activated account", zap.String("login", account.Login))
		if s.dispatcher != nil {
			_ = s.dispatcher.Publish(ctx, events.Event{
				ID:        uuid.NewString(),
				Type:      events.EventAccountRemoved,
				AccountID: account.ID,
				Login:     account.Login,
				Timestamp: now,
				Payload:   events.AccountRemovedPayload{CreatedDate: account.CreatedDate},
			})
		}
	}
	s.metrics.RecordSweep(removed)
	return removed
}

// Run drives Sweep on a fixed interval until the context is cancelled.
// A tick arriving while a run is still in progress is skipped, not queued.
func (s *ExpirySweeper) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.running.CompareAndSwap(false, true) {
				continue
			}
			s.Sweep(ctx, s.clock())
			s.running.Store(false)
		}
	}
}
