package mirror

import (
	"context"
	"errors"
	"time"
)

// Refresher periodically re-fetches every mirrored collection so dashboard
// clients see server-side changes without an explicit reload.
type Refresher struct {
	mirror *Mirror

	tick <-chan time.Time
	stop func()
}

// RefresherConfig configures a Refresher. Tick/Stop override the interval
// ticker, which tests use to drive the loop deterministically.
type RefresherConfig struct {
	Mirror   *Mirror
	Interval time.Duration

	Tick <-chan time.Time
	Stop func()
}

// NewRefresher creates a refresher for the given mirror.
func NewRefresher(cfg RefresherConfig) (*Refresher, error) {
	if cfg.Mirror == nil {
		return nil, errors.New("mirror: refresher requires a mirror")
	}

	tick := cfg.Tick
	stop := cfg.Stop
	if tick == nil {
		interval := cfg.Interval
		if interval <= 0 {
			interval = 5 * time.Minute
		}
		ticker := time.NewTicker(interval)
		tick = ticker.C
		stop = ticker.Stop
	}

	return &Refresher{
		mirror: cfg.Mirror,
		tick:   tick,
		stop:   stop,
	}, nil
}

// Start primes the stores from the snapshot cache, performs an initial
// refresh, then refreshes on every tick until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	if r == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer func() {
		if r.stop != nil {
			r.stop()
		}
	}()

	r.mirror.Prime(ctx)
	_ = r.mirror.RefreshAll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.tick:
			_ = r.mirror.RefreshAll(ctx)
		}
	}
}
