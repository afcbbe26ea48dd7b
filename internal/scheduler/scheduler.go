package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/osse101/LootLoop_Go/internal/worker"
)

// Enqueuer is the part of worker.Pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler submits jobs to a pool at fixed intervals
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule runs job every interval until Stop. A tick that finds the pool
// full is skipped, never queued up.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if !s.pool.TryEnqueue(job) {
					slog.Warn("Scheduled job skipped, pool busy", "job", name)
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs and waits for their goroutines
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
