package bootstrap

import (
	"log/slog"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/scheduler"
	"github.com/osse101/MelodyQuest_Go/internal/worker"
)

// BackgroundJobs are the periodic probes running beside the server
type BackgroundJobs struct {
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
}

// StartBackgroundJobs schedules the storage probe and, when streams is set,
// the event stream gauge.
func StartBackgroundJobs(interval time.Duration, store worker.Pinger, streams worker.StreamCounter) *BackgroundJobs {
	pool := worker.NewPool(BackgroundWorkers, BackgroundQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(interval, worker.NewStorageProbe(store))
	if streams != nil {
		sched.Schedule(interval, worker.NewStreamGauge(streams))
	}

	slog.Info(LogMsgBackgroundJobsStarted, "interval", interval)
	return &BackgroundJobs{Pool: pool, Scheduler: sched}
}

// Stop halts the schedule first so nothing is enqueued into a stopped pool
func (b *BackgroundJobs) Stop() {
	b.Scheduler.Stop()
	b.Pool.Stop()
}
