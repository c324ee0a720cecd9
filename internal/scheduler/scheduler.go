// Package scheduler runs the polling loops and serializes their access to the
// shared HTB session.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Huskehhh/hackthebot/internal/metrics"
)

// defaultCycleTimeout bounds one cycle body; individual network calls carry
// their own 10s timeouts, this covers a cycle with a long announcement batch.
const defaultCycleTimeout = 2 * time.Minute

// Loop is one independently timed polling loop. Run is a full cycle body.
type Loop struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler runs its loops on dedicated goroutines. All loops share a single
// mutex: the HTB session token and the Discord handle are one logical
// resource, so a cycle body runs under exclusive access. The lock is released
// before a loop sleeps, never held across the interval.
type Scheduler struct {
	session      sync.Mutex
	loops        []Loop
	cycleTimeout time.Duration
	metrics      *metrics.Metrics
}

// New returns a Scheduler for the given loops. m may be nil.
func New(m *metrics.Metrics, loops ...Loop) *Scheduler {
	return &Scheduler{
		loops:        loops,
		cycleTimeout: defaultCycleTimeout,
		metrics:      m,
	}
}

// Run starts every loop and blocks until ctx is cancelled. Each loop runs one
// cycle immediately, then once per interval. A cycle error is logged and the
// loop sleeps and retries; loops never exit on error.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, l := range s.loops {
		wg.Add(1)
		go func(l Loop) {
			defer wg.Done()
			s.runLoop(ctx, l)
		}(l)
	}
	wg.Wait()
}

func (s *Scheduler) runLoop(ctx context.Context, l Loop) {
	for {
		s.runCycle(ctx, l)
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.Interval):
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context, l Loop) {
	s.session.Lock()
	defer s.session.Unlock()
	if ctx.Err() != nil {
		return
	}

	cctx, cancel := context.WithTimeout(ctx, s.cycleTimeout)
	defer cancel()
	if err := l.Run(cctx); err != nil {
		log.Printf("scheduler: %s cycle: %v", l.Name, err)
		s.metrics.CycleError(l.Name)
		return
	}
	s.metrics.CycleOK(l.Name)
}
