// Package trigger provides the periodic trigger that paces resource refresh
// loops.
//
// A Periodic trigger fires at most once per period. The first call to Await
// fires immediately; every later call blocks until a full period has passed
// since the previous firing, or fires immediately when that is already the
// case. Canceling the context passed to Await stops the trigger for good.
package trigger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPeriod is used when a trigger is built with a non-positive period.
const DefaultPeriod = 3600 * time.Second

// Option configures a Periodic trigger.
type Option func(*Periodic)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(p *Periodic) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLogger sets the logger used to report cancellation.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Periodic) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Periodic signals "run now" no more often than once per period.
type Periodic struct {
	period time.Duration
	clock  clockwork.Clock
	logger *slog.Logger

	mu      sync.Mutex
	lastRun time.Time
	stopped bool
}

// New creates a trigger with the given period.
func New(period time.Duration, opts ...Option) *Periodic {
	if period <= 0 {
		period = DefaultPeriod
	}

	p := &Periodic{
		period: period,
		clock:  clockwork.NewRealClock(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With("component", "trigger")

	return p
}

// Period returns the configured period.
func (p *Periodic) Period() time.Duration {
	return p.period
}

// LastRun returns the time of the latest firing, or the zero time if the
// trigger has not fired yet.
func (p *Periodic) LastRun() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastRun
}

// Stopped reports whether the trigger was canceled.
func (p *Periodic) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// Await blocks until the next firing is due and returns true, or returns
// false once ctx is canceled. After the first false every call returns false
// immediately.
func (p *Periodic) Await(ctx context.Context) bool {
	p.mu.Lock()
	stopped, last := p.stopped, p.lastRun
	p.mu.Unlock()

	if stopped {
		return false
	}
	if err := ctx.Err(); err != nil {
		p.stop(err)
		return false
	}

	if !last.IsZero() {
		elapsed := p.clock.Since(last)
		if wait := p.period - elapsed; wait > 0 {
			p.logger.Debug("Waiting for next firing", "wait", wait, "elapsed", elapsed)

			timer := p.clock.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				p.stop(ctx.Err())
				return false
			case <-timer.Chan():
			}
		}
	}

	p.mark(p.clock.Now())
	return true
}

// Run calls fn every time the trigger fires until ctx is canceled, which
// ends the loop with a nil error. An error returned by fn ends the loop and
// is returned.
func (p *Periodic) Run(ctx context.Context, fn func(context.Context) error) error {
	for p.Await(ctx) {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("periodic run failed: %w", err)
		}
	}
	return nil
}

func (p *Periodic) mark(now time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// last-run never moves backwards, even if the clock does.
	if now.After(p.lastRun) {
		p.lastRun = now
	}
}

func (p *Periodic) stop(cause error) {
	p.mu.Lock()
	already := p.stopped
	p.stopped = true
	p.mu.Unlock()

	if !already {
		p.logger.Warn("Periodic trigger canceled, scheduling stopped", "error", cause)
	}
}
