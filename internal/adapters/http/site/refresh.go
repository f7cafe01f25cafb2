package site

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/medailles/pkg/logger"
)

// Rebuilder regenerates the site on disk.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// Status is the outcome of the latest rebuild.
type Status struct {
	LastRun   time.Time
	LastError error
	Runs      int
}

// Refresher runs a Rebuilder on every tick until its context ends.
type Refresher struct {
	rebuilder Rebuilder
	interval  time.Duration
	logger    logger.Logger
	now       func() time.Time

	mu     sync.RWMutex
	status Status
}

// RefresherOption configures a Refresher.
type RefresherOption func(*Refresher)

// WithRefreshLogger sets the refresher logger.
func WithRefreshLogger(l logger.Logger) RefresherOption {
	return func(r *Refresher) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRefreshClock replaces time.Now.
func WithRefreshClock(now func() time.Time) RefresherOption {
	return func(r *Refresher) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRefresher rebuilds through rb every interval. A non-positive interval
// disables periodic rebuilds.
func NewRefresher(rb Rebuilder, interval time.Duration, opts ...RefresherOption) *Refresher {
	r := &Refresher{
		rebuilder: rb,
		interval:  interval,
		logger:    logger.Get().Named("refresh"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run blocks until ctx is done, or returns at once when periodic rebuilds
// are disabled. Failed rebuilds are logged and retried on the next tick;
// the previous site stays in place. Call Refresh first for the initial build.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = r.Refresh(ctx)
		}
	}
}

// Refresh rebuilds once and records the outcome.
func (r *Refresher) Refresh(ctx context.Context) error {
	err := r.rebuilder.Rebuild(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrRebuild, err)
		r.logger.Error(ctx, "rebuild failed", logger.Error(err))
	} else {
		r.logger.Info(ctx, "site rebuilt")
	}

	r.mu.Lock()
	r.status = Status{LastRun: r.now(), LastError: err, Runs: r.status.Runs + 1}
	r.mu.Unlock()
	return err
}

// Status returns the latest rebuild outcome.
func (r *Refresher) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}
