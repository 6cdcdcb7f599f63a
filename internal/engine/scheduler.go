package engine

import (
	"context"
	"sync"
	"time"
)

// defaultGraceDelay is the wait inserted between a player appearing on the
// bus and the first state query. Some players (the official spotify client
// among them) register before publishing complete metadata and never emit
// a follow-up change signal once it is available; querying too early would
// leave the cell stuck empty.
const defaultGraceDelay = time.Second

// scheduler is not a queue: it is a single coalescible dirty signal.
// Any number of requests arriving before a pass executes collapse into one
// pass, and all passes run on the one loop goroutine.
type scheduler struct {
	trigger    chan struct{}
	graceDelay time.Duration

	mu    sync.Mutex
	grace bool
}

func newScheduler(graceDelay time.Duration) *scheduler {
	return &scheduler{
		trigger:    make(chan struct{}, 1),
		graceDelay: graceDelay,
	}
}

// Request marks the cell dirty. Safe from any goroutine.
func (s *scheduler) Request() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// RequestAfterGrace marks the cell dirty and asks the loop to wait the
// grace delay before the pass. Requests inside the delay window are
// absorbed into that one pass.
func (s *scheduler) RequestAfterGrace() {
	s.mu.Lock()
	s.grace = true
	s.mu.Unlock()
	s.Request()
}

func (s *scheduler) takeGrace() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	grace := s.grace
	s.grace = false
	return grace
}

// run executes passes until ctx is cancelled. The grace delay deliberately
// blocks the dispatch loop for a bounded period, so no other pass may run
// during it; only teardown interrupts the wait.
func (s *scheduler) run(ctx context.Context, pass func(context.Context)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.trigger:
			if s.takeGrace() {
				select {
				case <-time.After(s.graceDelay):
				case <-ctx.Done():
					return
				}
				// coalesce everything that arrived during the wait
				select {
				case <-s.trigger:
				default:
				}
				s.takeGrace()
			}
			pass(ctx)
		}
	}
}
