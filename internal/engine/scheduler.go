package engine

import (
	"context"
	"time"

	"github.com/vovakirdan/mining-tycoon/internal/economy"
)

// TickFunc observes each tick: the tick number and the coins it delivered.
type TickFunc func(tick uint64, gain float64)

// Scheduler drives an Engine at the fixed tick rate without a UI. It reads
// the engine's state on every tick, so it never has to be restarted when
// counts or multipliers change.
type Scheduler struct {
	engine   *Engine
	interval time.Duration
	onTick   TickFunc
}

// NewScheduler returns a scheduler ticking every economy.TickInterval.
func NewScheduler(e *Engine) *Scheduler {
	return &Scheduler{engine: e, interval: economy.TickInterval}
}

// OnTick registers an observer called after every tick.
func (s *Scheduler) OnTick(fn TickFunc) *Scheduler {
	s.onTick = fn
	return s
}

// Run ticks until ctx is done, then flushes the engine. Each tick is a single
// synchronous step; cancellation is observed between ticks.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.engine.Flush() //nolint:errcheck // logged by the engine
			return ctx.Err()
		case <-ticker.C:
			gain := s.engine.Tick()
			if s.onTick != nil {
				s.onTick(s.engine.Ticks(), gain)
			}
		}
	}
}

// Advance runs n ticks immediately. Used for catch-up and tests.
func (s *Scheduler) Advance(n int) float64 {
	var total float64
	for range n {
		gain := s.engine.Tick()
		total += gain
		if s.onTick != nil {
			s.onTick(s.engine.Ticks(), gain)
		}
	}
	return total
}
