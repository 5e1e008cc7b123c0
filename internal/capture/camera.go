package capture

import (
	"context"
	"errors"
	"image"
)

// ErrStreamIdle is returned by a stream that saw no frame within its timeout
var ErrStreamIdle = errors.New("capture stream idle")

// Frame is one unit of camera input. Producers that already ran a decoder
// (a browser, a phone app) fill Text; raw producers fill Image.
type Frame struct {
	Text  string
	Image image.Image
}

// Camera hands out frame streams. Acquire fails with domain.ErrCaptureUnavailable
// when no device can be opened.
type Camera interface {
	Acquire(ctx context.Context) (Stream, error)
}

// Stream yields frames until closed. Next blocks until a frame arrives or ctx ends.
type Stream interface {
	Next(ctx context.Context) (Frame, error)
	Close() error
}

// Decoder turns a frame into scanned text. It returns "" when the frame
// holds no readable code.
type Decoder interface {
	Decode(frame Frame) (string, error)
}

// FrameSink accepts frames pushed from outside, e.g. an HTTP upload
type FrameSink interface {
	Push(frame Frame) error
}

// UnavailableCamera always fails to acquire
type UnavailableCamera struct{}

// Acquire implements Camera
func (UnavailableCamera) Acquire(context.Context) (Stream, error) {
	return nil, errCameraMissing
}
