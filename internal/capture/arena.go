package capture

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/metrics"
)

// ArenaConfig configures the sessions an Arena creates
type ArenaConfig struct {
	// Scenes that offer a camera scan
	Scenes     []domain.SceneIndex
	SceneCount int
	Threshold  int
	Resolver   *Resolver
	Decoder    Decoder
	// CameraFor returns the camera a scene's session reads from
	CameraFor     func(scene domain.SceneIndex) Camera
	OnCommit      CommitFunc
	OnDetect      DetectFunc
	OnUnavailable func(ctx context.Context, err error)
}

// Arena holds one lazily created Session per capture scene
type Arena struct {
	cfg ArenaConfig

	mu                  sync.Mutex
	sessions            map[domain.SceneIndex]*Session
	cameras             map[domain.SceneIndex]Camera
	unavailableReported bool
}

// NewArena creates an arena. Missing Decoder and CameraFor default to
// NewImageDecoder and UnavailableCamera.
func NewArena(cfg ArenaConfig) *Arena {
	if cfg.Decoder == nil {
		cfg.Decoder = NewImageDecoder()
	}
	if cfg.CameraFor == nil {
		cfg.CameraFor = func(domain.SceneIndex) Camera { return UnavailableCamera{} }
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewResolver(nil)
	}
	return &Arena{
		cfg:      cfg,
		sessions: make(map[domain.SceneIndex]*Session),
		cameras:  make(map[domain.SceneIndex]Camera),
	}
}

// Supports reports whether scene offers a camera scan
func (a *Arena) Supports(scene domain.SceneIndex) bool {
	for _, s := range a.cfg.Scenes {
		if s == scene {
			return true
		}
	}
	return false
}

// Start begins the scene's scan session. The first ErrCaptureUnavailable
// seen by this arena is also reported through OnUnavailable.
func (a *Arena) Start(ctx context.Context, scene domain.SceneIndex) error {
	sess, err := a.session(scene)
	if err != nil {
		return err
	}
	if err := sess.Start(ctx); err != nil {
		metrics.ScanSessions.WithLabelValues(metrics.ResultFailed).Inc()
		a.reportUnavailable(ctx, err)
		return err
	}
	metrics.ScanSessions.WithLabelValues(metrics.ResultOK).Inc()
	return nil
}

// Stop halts the scene's session, if any
func (a *Arena) Stop(scene domain.SceneIndex) {
	a.mu.Lock()
	sess, ok := a.sessions[scene]
	a.mu.Unlock()
	if ok {
		sess.Stop()
	}
}

// StopAll halts every session
func (a *Arena) StopAll() {
	a.mu.Lock()
	sessions := make([]*Session, 0, len(a.sessions))
	for _, s := range a.sessions {
		sessions = append(sessions, s)
	}
	a.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}

// Running reports whether the scene's session is scanning
func (a *Arena) Running(scene domain.SceneIndex) bool {
	a.mu.Lock()
	sess, ok := a.sessions[scene]
	a.mu.Unlock()
	return ok && sess.Running()
}

// Push delivers an externally produced frame to the scene's camera
func (a *Arena) Push(scene domain.SceneIndex, frame Frame) error {
	a.mu.Lock()
	cam, ok := a.cameras[scene]
	a.mu.Unlock()
	if !ok {
		return domain.ErrCaptureNotActive
	}
	sink, ok := cam.(FrameSink)
	if !ok {
		return fmt.Errorf("%w: scene %d camera does not accept frames", domain.ErrCaptureUnavailable, int(scene))
	}
	return sink.Push(frame)
}

func (a *Arena) session(scene domain.SceneIndex) (*Session, error) {
	if !a.Supports(scene) {
		return nil, fmt.Errorf("%w: scene %d has no camera scan", domain.ErrCaptureUnavailable, int(scene))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if sess, ok := a.sessions[scene]; ok {
		return sess, nil
	}

	cam := a.cfg.CameraFor(scene)
	debouncer := NewDebouncer(a.cfg.Resolver, a.cfg.SceneCount, a.cfg.Threshold)
	sess := NewSession(scene, cam, a.cfg.Decoder, debouncer, a.cfg.OnCommit, a.cfg.OnDetect)
	a.cameras[scene] = cam
	a.sessions[scene] = sess
	return sess, nil
}

func (a *Arena) reportUnavailable(ctx context.Context, err error) {
	a.mu.Lock()
	first := !a.unavailableReported
	a.unavailableReported = true
	a.mu.Unlock()

	if first && a.cfg.OnUnavailable != nil {
		a.cfg.OnUnavailable(ctx, err)
	}
}
