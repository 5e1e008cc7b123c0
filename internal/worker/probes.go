package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/metrics"
)

// Pinger is a backend that can report its health
type Pinger interface {
	Ping(ctx context.Context) error
}

// StorageProbe pings storage and publishes the result as the storage_up
// gauge. Only transitions are logged.
type StorageProbe struct {
	store Pinger

	mu   sync.Mutex
	down bool
}

func NewStorageProbe(store Pinger) *StorageProbe {
	return &StorageProbe{store: store}
}

func (p *StorageProbe) Process(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, StorageProbeTimeout)
	defer cancel()
	err := p.store.Ping(ctx)

	p.mu.Lock()
	wasDown := p.down
	p.down = err != nil
	p.mu.Unlock()

	if err != nil {
		metrics.StorageUp.Set(0)
		if !wasDown {
			slog.Warn(LogMsgStorageDown, "error", err)
		}
		return nil
	}
	metrics.StorageUp.Set(1)
	if wasDown {
		slog.Info(LogMsgStorageRecovered)
	}
	return nil
}

// StreamCounter reports a number of open streams
type StreamCounter interface {
	ClientCount() int
}

// StreamGauge samples the open event stream count into metrics
type StreamGauge struct {
	streams StreamCounter
}

func NewStreamGauge(streams StreamCounter) *StreamGauge {
	return &StreamGauge{streams: streams}
}

func (g *StreamGauge) Process(context.Context) error {
	metrics.EventStreams.Set(float64(g.streams.ClientCount()))
	return nil
}
