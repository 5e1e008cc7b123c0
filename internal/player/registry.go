// Package player keeps one progression controller and one set of capture
// sessions per player, namespaced in shared storage.
package player

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/MelodyQuest_Go/internal/capture"
	"github.com/osse101/MelodyQuest_Go/internal/concurrency"
	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/event"
	"github.com/osse101/MelodyQuest_Go/internal/experience"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/metrics"
	"github.com/osse101/MelodyQuest_Go/internal/presenter"
	"github.com/osse101/MelodyQuest_Go/internal/progression"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
)

// Player is one visitor's live state
type Player struct {
	ID         string
	Controller *progression.Controller
	Arena      *capture.Arena
	Presenter  *presenter.Bus
}

// Config tunes the registry
type Config struct {
	CacheSize    int
	CacheTTL     time.Duration
	FrameBuffer  int
	FrameTimeout time.Duration
	// ControllerOptions are applied to every new controller
	ControllerOptions []progression.Option
}

// Registry caches players in an expiring LRU. Evicted players lose only
// their in-memory state; progress stays in storage and is restored on the
// next lookup.
type Registry struct {
	store   storage.Store
	bus     event.Bus
	exp     *experience.Experience
	cfg     Config
	decoder capture.Decoder

	// restoring serialises builds per player id
	restoring *concurrency.LockManager
	lru       *expirable.LRU[string, *Player]
}

// NewRegistry creates a registry backed by store and publishing to bus
func NewRegistry(store storage.Store, bus event.Bus, exp *experience.Experience, cfg Config) *Registry {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.FrameBuffer <= 0 {
		cfg.FrameBuffer = capture.DefaultFrameBuffer
	}
	if cfg.FrameTimeout <= 0 {
		cfg.FrameTimeout = capture.DefaultFrameTimeout
	}
	r := &Registry{
		store:     store,
		bus:       bus,
		exp:       exp,
		cfg:       cfg,
		decoder:   capture.NewImageDecoder(),
		restoring: concurrency.NewLockManager(),
	}
	r.lru = expirable.NewLRU[string, *Player](cfg.CacheSize, r.onEvict, cfg.CacheTTL)
	return r
}

// Create registers a new player with fresh progress
func (r *Registry) Create(ctx context.Context) (*Player, error) {
	id := uuid.NewString()

	unlock := r.restoring.Lock(id)
	defer unlock()
	p, err := r.build(logger.WithPlayerID(ctx, id), id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgPlayerCreated, "player_id", id)
	return p, nil
}

// Get returns the player with id, restoring it from storage when it is not
// in memory. Malformed ids are reported as ErrPlayerNotFound.
func (r *Registry) Get(ctx context.Context, id string) (*Player, error) {
	if p, ok := r.lru.Get(id); ok {
		return p, nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, id)
	}
	id = parsed.String()

	unlock := r.restoring.Lock(id)
	defer unlock()
	if p, ok := r.lru.Get(id); ok {
		return p, nil
	}
	p, err := r.build(logger.WithPlayerID(ctx, id), id)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Debug(LogMsgPlayerRestored, "player_id", id, "scene", int(p.Controller.State().CurrentScene))
	return p, nil
}

// Len returns the number of players held in memory
func (r *Registry) Len() int {
	return r.lru.Len()
}

// Close stops every player's capture sessions
func (r *Registry) Close() {
	r.lru.Purge()
}

// build wires a player and restores its progress. A player whose progress
// could not be read is not cached. Caller holds id's restore lock.
func (r *Registry) build(ctx context.Context, id string) (*Player, error) {
	pres := presenter.NewBus(r.bus, id)
	store := storage.WithPrefix(r.store, storage.PlayerPrefix(id))

	ctrl, err := progression.NewController(r.exp.Progression(), store, pres, pres, r.cfg.ControllerOptions...)
	if err != nil {
		return nil, err
	}

	p := &Player{ID: id, Controller: ctrl, Presenter: pres}
	p.Arena = capture.NewArena(capture.ArenaConfig{
		Scenes:     r.exp.Capture.Scenes,
		SceneCount: r.exp.SceneCount,
		Threshold:  r.exp.Capture.CommitThreshold,
		Resolver:   r.exp.Resolver(),
		Decoder:    r.decoder,
		CameraFor: func(domain.SceneIndex) capture.Camera {
			return capture.NewUploadCamera(r.cfg.FrameBuffer, r.cfg.FrameTimeout)
		},
		OnCommit: ctrl.NavigateFromScan,
		OnDetect: pres.Detected,
		OnUnavailable: func(ctx context.Context, _ error) {
			ctrl.Notify(ctx, progression.NoticeCaptureUnavailable)
		},
	})

	// A client hanging up mid-restore must not turn into a failed read
	if _, err := ctrl.Initialize(context.WithoutCancel(ctx)); err != nil {
		return nil, err
	}
	r.lru.Add(id, p)
	metrics.ActivePlayers.Inc()
	return p, nil
}

// onEvict runs under the LRU's lock; it must not call back into r.lru
func (r *Registry) onEvict(id string, p *Player) {
	p.Arena.StopAll()
	metrics.ActivePlayers.Dec()
	slog.Default().Debug(LogMsgPlayerEvicted, "player_id", id)
}
