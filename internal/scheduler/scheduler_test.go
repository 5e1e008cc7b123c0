package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/MelodyQuest_Go/internal/worker"
)

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	var runs int32
	sched.Schedule(10*time.Millisecond, worker.JobFunc(func(context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&runs) >= 2 },
		time.Second, 5*time.Millisecond)
}

func TestScheduler_RunsImmediately(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	ran := make(chan struct{}, 1)
	sched.Schedule(time.Hour, worker.JobFunc(func(context.Context) error {
		ran <- struct{}{}
		return nil
	}))

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on schedule")
	}
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	pool := worker.NewPool(1, 1)
	sched := New(pool)
	sched.Schedule(time.Millisecond, worker.JobFunc(func(context.Context) error { return nil }))

	sched.Stop()
	sched.Stop()
	pool.Stop()
}
