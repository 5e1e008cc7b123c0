package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
)

var errCameraMissing = fmt.Errorf("%w: no camera attached", domain.ErrCaptureUnavailable)

// UploadCamera is a Camera fed by Push. Only one stream may be open at a time.
// Frames pushed while no stream is open are rejected with ErrCaptureNotActive.
type UploadCamera struct {
	mu      sync.Mutex
	frames  chan Frame
	buffer  int
	timeout time.Duration
}

// NewUploadCamera creates a push-fed camera. A zero timeout disables the idle check.
func NewUploadCamera(buffer int, timeout time.Duration) *UploadCamera {
	if buffer <= 0 {
		buffer = DefaultFrameBuffer
	}
	return &UploadCamera{buffer: buffer, timeout: timeout}
}

// Acquire implements Camera
func (c *UploadCamera) Acquire(ctx context.Context) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frames != nil {
		return nil, fmt.Errorf("%w: stream already open", domain.ErrCaptureUnavailable)
	}
	ch := make(chan Frame, c.buffer)
	c.frames = ch
	return &uploadStream{camera: c, frames: ch, timeout: c.timeout}, nil
}

// Push implements FrameSink. A full buffer drops the frame.
func (c *UploadCamera) Push(frame Frame) error {
	c.mu.Lock()
	ch := c.frames
	c.mu.Unlock()
	if ch == nil {
		return domain.ErrCaptureNotActive
	}
	select {
	case ch <- frame:
	default:
	}
	return nil
}

// Active reports whether a stream is open
func (c *UploadCamera) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames != nil
}

func (c *UploadCamera) release(ch chan Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frames == ch {
		c.frames = nil
	}
}

type uploadStream struct {
	camera  *UploadCamera
	frames  chan Frame
	timeout time.Duration
	once    sync.Once
}

func (s *uploadStream) Next(ctx context.Context) (Frame, error) {
	var idle <-chan time.Time
	if s.timeout > 0 {
		timer := time.NewTimer(s.timeout)
		defer timer.Stop()
		idle = timer.C
	}
	select {
	case <-ctx.Done():
		return Frame{}, ctx.Err()
	case f := <-s.frames:
		return f, nil
	case <-idle:
		return Frame{}, ErrStreamIdle
	}
}

func (s *uploadStream) Close() error {
	s.once.Do(func() { s.camera.release(s.frames) })
	return nil
}
