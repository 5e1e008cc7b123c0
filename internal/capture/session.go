package capture

import (
	"context"
	"errors"
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
)

// CommitFunc receives the single navigation a session commits
type CommitFunc func(ctx context.Context, target domain.SceneIndex)

// DetectFunc receives every non-empty decoded text, for echoing to the player
type DetectFunc func(ctx context.Context, text string)

// Session scans one scene's camera until a navigation is committed or Stop is called.
// The camera stream is released on every exit path.
type Session struct {
	scene     domain.SceneIndex
	camera    Camera
	decoder   Decoder
	debouncer *Debouncer
	onCommit  CommitFunc
	onDetect  DetectFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSession wires a session. onDetect may be nil.
func NewSession(scene domain.SceneIndex, camera Camera, decoder Decoder, debouncer *Debouncer, onCommit CommitFunc, onDetect DetectFunc) *Session {
	return &Session{
		scene:     scene,
		camera:    camera,
		decoder:   decoder,
		debouncer: debouncer,
		onCommit:  onCommit,
		onDetect:  onDetect,
	}
}

// Start acquires the camera and begins scanning. Starting a running session is a no-op.
// The scan loop outlives ctx's cancellation but keeps its values.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runningLocked() {
		return nil
	}

	stream, err := s.camera.Acquire(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrCaptureUnavailable) {
			err = errors.Join(domain.ErrCaptureUnavailable, err)
		}
		return err
	}

	s.debouncer.Reset()
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	logger.FromContext(ctx).Info(LogMsgSessionStarted, "scene", int(s.scene))
	go s.run(runCtx, stream, done)
	return nil
}

// Stop halts scanning and waits for the camera to be released. Idempotent.
// Must not be called from the session's own callbacks.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the scan loop is active
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runningLocked()
}

// Done is closed when the current scan loop exits. Nil if never started.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Scene returns the scene this session scans for
func (s *Session) Scene() domain.SceneIndex {
	return s.scene
}

func (s *Session) runningLocked() bool {
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *Session) run(ctx context.Context, stream Stream, done chan struct{}) {
	log := logger.FromContext(ctx)
	defer close(done)
	defer func() {
		if err := stream.Close(); err != nil {
			log.Warn("Failed to release camera stream", "scene", int(s.scene), "error", err)
		}
	}()

	for {
		frame, err := stream.Next(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.Info(LogMsgSessionStopped, "scene", int(s.scene), "reason", err)
			} else {
				log.Debug(LogMsgSessionStopped, "scene", int(s.scene))
			}
			return
		}

		text, err := s.decoder.Decode(frame)
		if err != nil {
			log.Debug(LogMsgFrameDecodeFail, "scene", int(s.scene), "error", err)
			text = ""
		}
		if text != "" && s.onDetect != nil {
			s.onDetect(ctx, text)
		}

		target, ok := s.debouncer.Observe(text)
		if !ok {
			continue
		}

		log.Info(LogMsgSessionCommitted, "scene", int(s.scene), "target", int(target))
		if s.onCommit != nil {
			s.onCommit(ctx, target)
		}
		return
	}
}
