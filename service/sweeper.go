package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/crowdstaking-org/crowdstaking-platform-sub002/ports"
)

// DefaultSweepInterval is how often expired sessions are removed.
const DefaultSweepInterval = time.Hour

// Sweeper periodically removes expired sessions so abandoned sessions that are
// never verified again do not accumulate. Its lifecycle is owned by the
// process that created it, not by package initialization.
type Sweeper struct {
	store    ports.SessionStore
	interval time.Duration
	logger   *zap.Logger
}

// NewSweeper creates a new Sweeper. A non-positive interval falls back to
// DefaultSweepInterval.
func NewSweeper(store ports.SessionStore, interval time.Duration, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled. It returns after the
// in-flight sweep, if any, has completed.
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := w.store.Sweep(ctx)
			if err != nil {
				w.logger.Error("session sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				w.logger.Info("swept expired sessions", zap.Int("removed", removed))
			}
		}
	}
}
