package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper drops expired in-memory state and reports how much it removed.
type Sweeper interface {
	Sweep(now time.Time) int
}

// SweepFunc adapts a function to Sweeper.
type SweepFunc func(now time.Time) int

func (f SweepFunc) Sweep(now time.Time) int {
	return f(now)
}

// Janitor periodically runs a set of named sweepers.
type Janitor struct {
	sweepers map[string]Sweeper
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewJanitor constructs a janitor ticking every interval. A non-positive
// interval selects one minute.
func NewJanitor(sweepers map[string]Sweeper, interval time.Duration, logger *slog.Logger) *Janitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{
		sweepers: sweepers,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start launches the sweep loop. Starting a running janitor does nothing.
func (j *Janitor) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel

	j.wg.Add(1)
	go j.loop(runCtx)
}

// Stop ends the loop and waits for an in-progress sweep.
func (j *Janitor) Stop() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
		j.cancel = nil
	}
	j.mu.Unlock()

	j.wg.Wait()
}

func (j *Janitor) loop(ctx context.Context) {
	defer j.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.SweepOnce()
		}
	}
}

// SweepOnce runs every sweeper immediately.
func (j *Janitor) SweepOnce() {
	now := j.now()
	for name, s := range j.sweepers {
		if removed := s.Sweep(now); removed > 0 {
			j.logger.Debug("expired entries swept", slog.String("store", name), slog.Int("removed", removed))
		}
	}
}
