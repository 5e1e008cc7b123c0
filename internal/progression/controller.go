// Package progression owns a player's scene position, reward ledger,
// completion flags and wheel, and validates every transition between them.
package progression

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/osse101/MelodyQuest_Go/internal/domain"
	"github.com/osse101/MelodyQuest_Go/internal/ledger"
	"github.com/osse101/MelodyQuest_Go/internal/logger"
	"github.com/osse101/MelodyQuest_Go/internal/metrics"
	"github.com/osse101/MelodyQuest_Go/internal/storage"
	"github.com/osse101/MelodyQuest_Go/internal/utils"
	"github.com/osse101/MelodyQuest_Go/internal/wheel"
)

// Controller serialises every operation behind one mutex. Presentation calls
// gathered during an operation run after the mutex is released, so a
// presenter may call back into the controller.
type Controller struct {
	mu        sync.Mutex
	cfg       Config
	store     storage.Store
	presenter Presenter
	tones     TonePlayer
	rng       wheel.RNG

	current domain.SceneIndex
	ledger  *ledger.Ledger
	rewards *Flags
	quizzes *Flags
	wheel   wheel.State

	// detached is set when Initialize could not read the stored progress.
	// Nothing is written back until a later Initialize succeeds.
	detached bool
}

// Option customises a Controller
type Option func(*Controller)

// WithRNG replaces the wheel's randomness
func WithRNG(rng wheel.RNG) Option {
	return func(c *Controller) { c.rng = rng }
}

// NewController validates cfg and builds a controller with empty state.
// Call Initialize to restore persisted progress.
func NewController(cfg Config, store storage.Store, presenter Presenter, tones TonePlayer, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid progression config: %w", err)
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}
	if tones == nil {
		tones = NopTonePlayer{}
	}
	c := &Controller{
		cfg:       cfg,
		store:     store,
		presenter: presenter,
		tones:     tones,
		rng:       wheel.DefaultRNG(),
		ledger:    ledger.New(store, cfg.LedgerPolicy),
		rewards:   newFlags(KeyRewardFlagPrefix),
		quizzes:   newFlags(KeyQuizFlagPrefix),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// effects are presentation calls deferred until the mutex is released
type effects []func(ctx context.Context)

func (fx effects) run(ctx context.Context) {
	for _, f := range fx {
		f(ctx)
	}
}

// Initialize restores the persisted snapshot. The scene is clamped into range
// (absent or unparsable means 0); a missing or corrupt ledger, flag or wheel
// value reads as empty. A failed read returns ErrRestoreFailed and leaves the
// controller detached: it keeps working on defaults in memory but never
// overwrites the stored progress it could not read.
func (c *Controller) Initialize(ctx context.Context) (domain.ProgressionState, error) {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	raw, found, stageErr := c.store.Get(ctx, KeyStage)
	c.current = restoreScene(raw, found && stageErr == nil, c.cfg.SceneCount)

	l, ledgerErr := ledger.Load(ctx, c.store, c.cfg.LedgerPolicy)
	c.ledger = l
	rewardsErr := c.rewards.load(ctx, c.store)
	quizzesErr := c.quizzes.load(ctx, c.store)

	spun, found, spunErr := c.store.Get(ctx, KeySpun)
	c.wheel = wheel.State{Spun: spunErr == nil && found && spun == FlagSet}

	restoreErr := errors.Join(stageErr, ledgerErr, rewardsErr, quizzesErr, spunErr)
	c.detached = restoreErr != nil
	if c.detached {
		c.ledger.Detach()
	}

	scene := c.current
	fx := effects{func(ctx context.Context) { c.presenter.RenderScene(ctx, scene) }}
	fx = append(fx, c.navStateLocked()...)
	state := c.stateLocked()
	c.mu.Unlock()

	fx.run(ctx)
	if restoreErr != nil {
		metrics.StorageErrors.WithLabelValues(opRestore).Inc()
		log.Error(LogMsgRestoreFailed, "error", restoreErr)
		return state, fmt.Errorf("%w: %w", domain.ErrRestoreFailed, restoreErr)
	}
	log.Info(LogMsgInitialized, "scene", int(state.CurrentScene), "ledger", len(state.Ledger), "wheel_spun", state.WheelSpun)
	return state, nil
}

func restoreScene(raw string, found bool, sceneCount int) domain.SceneIndex {
	if !found {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return domain.ClampScene(n, 0, sceneCount-1)
}

// NavigateTo moves to target. An out-of-range target changes nothing and
// returns ErrOutOfRangeScene.
func (c *Controller) NavigateTo(ctx context.Context, target int) (domain.SceneIndex, error) {
	return c.navigate(ctx, target, metrics.SourceUI)
}

// NavigateFromScan is NavigateTo for navigations committed by a camera scan
func (c *Controller) NavigateFromScan(ctx context.Context, target domain.SceneIndex) {
	if _, err := c.navigate(ctx, int(target), metrics.SourceScan); err == nil {
		metrics.ScanCommits.Inc()
	}
}

// ForceNavigate is the diagnostics entry point. It ignores forward gating
// but applies the same range validation as NavigateTo.
func (c *Controller) ForceNavigate(ctx context.Context, target int) (domain.SceneIndex, error) {
	logger.FromContext(ctx).Warn(LogMsgDebugNavigation, "target", target)
	return c.navigate(ctx, target, metrics.SourceDebug)
}

// Step navigates to current+delta clamped into [0, NavigationCeiling]
func (c *Controller) Step(ctx context.Context, delta int) (domain.SceneIndex, error) {
	c.mu.Lock()
	target := stepTarget(int(c.current), delta, c.cfg.NavigationCeiling)
	scene, fx, err := c.navigateLocked(ctx, target, metrics.SourceStep)
	c.mu.Unlock()

	fx.run(ctx)
	return scene, err
}

// stepTarget clamps current+delta into [0, ceiling] without overflowing
func stepTarget(current, delta, ceiling int) int {
	switch {
	case delta >= ceiling-current:
		return ceiling
	case delta <= -current:
		return 0
	}
	return utils.Clamp(current+delta, 0, ceiling)
}

func (c *Controller) navigate(ctx context.Context, target int, source string) (domain.SceneIndex, error) {
	c.mu.Lock()
	scene, fx, err := c.navigateLocked(ctx, target, source)
	c.mu.Unlock()

	fx.run(ctx)
	return scene, err
}

func (c *Controller) navigateLocked(ctx context.Context, target int, source string) (domain.SceneIndex, effects, error) {
	log := logger.FromContext(ctx)

	if target < 0 || target >= c.cfg.SceneCount {
		metrics.Navigations.WithLabelValues(source, metrics.ResultOutOfRange).Inc()
		log.Debug(LogMsgNavigationRejected, "target", target, "scene_count", c.cfg.SceneCount, "source", source)
		return c.current, nil, fmt.Errorf("%w: %d not in [0, %d)", domain.ErrOutOfRangeScene, target, c.cfg.SceneCount)
	}

	scene := domain.SceneIndex(target)
	c.current = scene
	c.persist(ctx, opStage, func() error { return c.store.Set(ctx, KeyStage, strconv.Itoa(target)) })

	fx := effects{func(ctx context.Context) { c.presenter.RenderScene(ctx, scene) }}
	fx = append(fx, c.navStateLocked()...)

	if token, ok := c.cfg.RewardFor(scene); ok && !c.rewards.Has(scene) {
		grantFx, _ := c.grantLocked(ctx, token)
		fx = append(fx, grantFx...)
		c.rewards.add(scene)
		c.persist(ctx, opFlag, func() error { return c.rewards.save(ctx, c.store, scene) })
	}

	metrics.Navigations.WithLabelValues(source, metrics.ResultOK).Inc()
	log.Info(LogMsgNavigated, "scene", target, "source", source)
	return scene, fx, nil
}

func (c *Controller) navStateLocked() effects {
	back := c.current > 0
	forward := c.canGoForwardLocked()
	return effects{
		func(ctx context.Context) { c.presenter.SetBackEnabled(ctx, back) },
		func(ctx context.Context) { c.presenter.SetForwardEnabled(ctx, forward) },
	}
}

// CanGoBack reports whether a previous scene exists
func (c *Controller) CanGoBack() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current > 0
}

// CanGoForward is false on blocking scenes and at or past the navigation ceiling
func (c *Controller) CanGoForward() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canGoForwardLocked()
}

func (c *Controller) canGoForwardLocked() bool {
	return !c.cfg.Blocking(c.current) && int(c.current) < c.cfg.NavigationCeiling
}

// GrantReward adds token to the ledger and presents it. It never fails;
// added reports whether the ledger changed.
func (c *Controller) GrantReward(ctx context.Context, token domain.RewardToken) (added bool) {
	c.mu.Lock()
	fx, added := c.grantLocked(ctx, token)
	c.mu.Unlock()

	fx.run(ctx)
	return added
}

func (c *Controller) grantLocked(ctx context.Context, token domain.RewardToken) (effects, bool) {
	log := logger.FromContext(ctx)

	added, err := c.ledger.Add(ctx, token)
	if errors.Is(err, domain.ErrUnknownToken) {
		log.Warn("Ignoring grant of unknown token", "token", string(token))
		return nil, false
	}
	c.recordFailure(ctx, opLedger, err)

	tokens := c.ledger.Tokens()
	fx := effects{
		func(ctx context.Context) { c.tones.PlayTone(ctx, token) },
		func(ctx context.Context) { c.presenter.ShowReward(ctx, token, tokens) },
	}
	if added {
		fx = append(fx, func(ctx context.Context) { c.presenter.Celebrate(ctx, token) })
		log.Info(LogMsgRewardGranted, "token", string(token), "ledger", len(tokens))
	} else {
		log.Debug(LogMsgRewardDuplicate, "token", string(token))
	}

	metrics.RewardsGranted.WithLabelValues(string(token), strconv.FormatBool(added)).Inc()
	return fx, added
}

// Spin turns the wheel once and grants the landing slice's token.
// The wheel stays locked until Reset.
func (c *Controller) Spin(ctx context.Context) (domain.SpinResult, error) {
	c.mu.Lock()
	if c.wheel.Spun {
		c.mu.Unlock()
		return domain.SpinResult{}, domain.ErrWheelLocked
	}

	result := c.wheel.Spin(c.cfg.Wheel, c.rng)
	c.persist(ctx, opSpun, func() error { return c.store.Set(ctx, KeySpun, FlagSet) })

	fx, added := c.grantLocked(ctx, result.Token)
	result.Collected = added
	c.mu.Unlock()

	metrics.WheelSpins.WithLabelValues(strconv.Itoa(result.SliceIndex)).Inc()
	logger.FromContext(ctx).Info(LogMsgWheelSpun, "slice", result.SliceIndex, "token", string(result.Token), "rotation", result.Rotation)

	fx.run(ctx)
	return result, nil
}

// Reset clears the ledger, every completion flag and the wheel. The current
// scene is kept.
func (c *Controller) Reset(ctx context.Context) domain.ProgressionState {
	c.mu.Lock()
	c.recordFailure(ctx, opReset, c.ledger.Clear(ctx))
	c.rewards.reset()
	c.quizzes.reset()
	c.wheel.Reset()
	c.persist(ctx, opReset, func() error {
		return errors.Join(
			c.rewards.clear(ctx, c.store),
			c.quizzes.clear(ctx, c.store),
			c.store.Delete(ctx, KeySpun),
		)
	})

	scene := c.current
	fx := effects{func(ctx context.Context) { c.presenter.RenderScene(ctx, scene) }}
	fx = append(fx, c.navStateLocked()...)
	fx = append(fx, func(ctx context.Context) { c.presenter.Notice(ctx, NoticeProgressReset) })
	state := c.stateLocked()
	c.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgProgressReset, "scene", int(scene))
	fx.run(ctx)
	return state
}

// Notify forwards a one-off notice to the presenter
func (c *Controller) Notify(ctx context.Context, message string) {
	c.presenter.Notice(ctx, message)
}

// State returns a snapshot of the player's progress
func (c *Controller) State() domain.ProgressionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

// Config returns the experience shape the controller runs
func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) stateLocked() domain.ProgressionState {
	return domain.ProgressionState{
		CurrentScene:   c.current,
		SceneCount:     c.cfg.SceneCount,
		CanGoBack:      c.current > 0,
		CanGoForward:   c.canGoForwardLocked(),
		Ledger:         c.ledger.Tokens(),
		WheelSpun:      c.wheel.Spun,
		WheelRotation:  c.wheel.Rotation,
		RewardedScenes: c.rewards.Scenes(),
		QuizzesDone:    c.quizzes.Scenes(),
	}
}

// Detached reports whether the last Initialize failed to read stored progress
func (c *Controller) Detached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detached
}

// persist runs write unless the controller is detached. Caller holds the mutex.
func (c *Controller) persist(ctx context.Context, op string, write func() error) {
	if c.detached {
		return
	}
	c.recordFailure(ctx, op, write())
}

// recordFailure logs and counts a failed store operation. Progress carries
// on in memory either way.
func (c *Controller) recordFailure(ctx context.Context, op string, err error) {
	if err == nil {
		return
	}
	metrics.StorageErrors.WithLabelValues(op).Inc()
	logger.FromContext(ctx).Warn(LogMsgPersistFailed, "operation", op, "error", err)
}
