package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/whisperwall/backend/internal/repository"
)

// Sweeper soft-deletes whispers older than the retention window. It runs
// once at startup and then on every tick; a failed sweep is logged and
// retried naturally on the next tick.
type Sweeper struct {
	repo      repository.WhisperRepository
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger

	now func() time.Time
}

func New(repo repository.WhisperRepository, retention, interval time.Duration, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		repo:      repo,
		retention: retention,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
	}
}

// Run blocks until ctx is cancelled. Cancellation stops future ticks; an
// in-flight sweep always runs to completion.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("retention sweeper stopped")
			return
		case <-tick.C:
			s.sweep(ctx)
		}
	}
}

// Sweep performs a single pass and returns how many whispers expired.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	return s.repo.SoftDeleteExpired(ctx, cutoff)
}

func (s *Sweeper) sweep(ctx context.Context) {
	// Detached from cancellation so shutdown never aborts a sweep midway.
	n, err := s.Sweep(context.WithoutCancel(ctx))
	if err != nil {
		s.logger.Error("retention sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("retention sweep expired whispers", "count", n)
	}
}
