// Package scheduler triggers recurring analysis runs on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"EstatePulse/internal/ports"
)

// Ticker runs a job once per interval until stopped.
type Ticker struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var _ ports.Scheduler = (*Ticker)(nil)

// NewTicker builds a scheduler with the given interval.
func NewTicker(interval time.Duration) *Ticker {
	return &Ticker{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the ticking loop. The job runs synchronously inside the
// loop, so a slow run delays the next tick instead of piling up.
func (t *Ticker) Start(ctx context.Context, job func(time.Time)) error {
	if t.interval <= 0 {
		return fmt.Errorf("invalid scheduler interval %s", t.interval)
	}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.stop:
				return
			case now := <-ticker.C:
				job(now)
			}
		}
	}()
	return nil
}

// Stop halts the loop and waits for it to exit.
func (t *Ticker) Stop(ctx context.Context) error {
	close(t.stop)
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
