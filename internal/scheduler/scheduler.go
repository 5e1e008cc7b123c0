// Package scheduler feeds recurring jobs into a worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/worker"
)

// Scheduler owns one ticker goroutine per scheduled job
type Scheduler struct {
	pool   *worker.Pool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a scheduler that enqueues onto pool
func New(pool *worker.Pool) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{pool: pool, ctx: ctx, cancel: cancel}
}

// Schedule enqueues job once now and then every interval until Stop.
// A tick that finds the pool queue full is skipped rather than queued.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			s.pool.Enqueue(job)
			select {
			case <-ticker.C:
			case <-s.ctx.Done():
				return
			}
		}
	}()
}

// Stop ends every schedule and waits for the ticker goroutines. Safe to call twice.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}
