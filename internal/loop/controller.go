// Package loop drives a sub-game's action, either on demand or repeated on a
// timer, and routes every timer tick through the live configuration.
package loop

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/inventory"
	"github.com/osse101/LootLoop_Go/internal/metrics"
	"github.com/osse101/LootLoop_Go/internal/resource"
	"github.com/osse101/LootLoop_Go/internal/rng"
)

// Bonus credit trickle rolled once per action
const (
	BonusCreditChance = 0.0025
	BonusCreditAmount = 1
	MaxSoundBucket    = 15
)

// State is the controller's run mode.
type State int

const (
	StateIdle State = iota
	StateAuto
)

func (s State) String() string {
	if s == StateAuto {
		return "auto"
	}
	return "idle"
}

// InventorySink persists one action's drops and any bonus credits.
type InventorySink interface {
	Commit(ctx context.Context, subGame domain.SubGame, counts map[int]int, credits int) error
}

// Narrator is implemented by catalog entries that carry story text.
type Narrator interface {
	IsNarrative() bool
}

// Callbacks are fire-and-forget side effects. Nil callbacks are skipped.
type Callbacks[T domain.Weighted] struct {
	OnUpdate    func(count int, bestID int, credits int)
	OnFind      func(item T)
	PlayAction  func()
	PlayBoom    func(bucket int)
	PlayRare    func(bucket int)
	PlayCoinWin func(amount int)
}

// ActionResult is what one action produced.
type ActionResult[T domain.Weighted] struct {
	Drops   []T
	Counts  map[int]int
	Best    T
	Credits int
}

// Summary is the type-erased view of an ActionResult.
type Summary struct {
	SubGame  domain.SubGame `json:"subGame"`
	Count    int            `json:"count"`
	BestID   int            `json:"bestId"`
	BestName string         `json:"bestName"`
	Counts   map[int]int    `json:"counts"`
	Credits  int            `json:"credits"`
}

// Controller runs one sub-game instance. It is safe for concurrent use;
// actions are serialized so at most one is in flight.
type Controller[T domain.Weighted] struct {
	subGame   domain.SubGame
	resolver  *resource.Resolver[T]
	catalog   domain.Catalog[T]
	sink      InventorySink
	bonusRoll rng.Source
	callbacks Callbacks[T]

	cfg   atomic.Pointer[domain.LoopConfig]
	muted atomic.Bool
	gen   atomic.Uint64

	actMu sync.Mutex

	timerMu sync.Mutex
	ticker  *time.Ticker
	stop    chan struct{}
	speedMs int
	wg      sync.WaitGroup
}

// New creates an idle, unconfigured controller. sink and bonusRoll may be nil.
func New[T domain.Weighted](subGame domain.SubGame, resolver *resource.Resolver[T], catalog domain.Catalog[T], sink InventorySink, bonusRoll rng.Source, callbacks Callbacks[T]) *Controller[T] {
	if bonusRoll == nil {
		bonusRoll = rng.Default()
	}
	return &Controller[T]{
		subGame:   subGame,
		resolver:  resolver,
		catalog:   catalog,
		sink:      sink,
		bonusRoll: bonusRoll,
		callbacks: callbacks,
	}
}

// SubGame returns the sub-game this controller runs.
func (c *Controller[T]) SubGame() domain.SubGame { return c.subGame }

// Configure swaps the live configuration. The next tick uses it; a running
// ticker is re-armed in place when the speed changes.
func (c *Controller[T]) Configure(cfg domain.LoopConfig) {
	if cfg.SpeedMs < 1 {
		cfg.SpeedMs = 1
	}
	if cfg.Multi < 1 {
		cfg.Multi = 1
	}
	c.cfg.Store(&cfg)

	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	if c.ticker != nil && c.speedMs != cfg.SpeedMs {
		c.ticker.Reset(time.Duration(cfg.SpeedMs) * time.Millisecond)
		c.speedMs = cfg.SpeedMs
	}
}

// Config returns the live configuration, if any.
func (c *Controller[T]) Config() (domain.LoopConfig, bool) {
	cfg := c.cfg.Load()
	if cfg == nil {
		return domain.LoopConfig{}, false
	}
	return *cfg, true
}

// SetMuted suppresses rarity sounds. The action cue still plays.
func (c *Controller[T]) SetMuted(muted bool) { c.muted.Store(muted) }

// Muted reports the mute flag.
func (c *Controller[T]) Muted() bool { return c.muted.Load() }

// State reports whether the timer is armed.
func (c *Controller[T]) State() State {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()
	if c.ticker != nil {
		return StateAuto
	}
	return StateIdle
}

// SetAuto arms or disarms the timer. Enabling always replaces any existing
// ticker so two never overlap; disabling stops it and clears the handle.
// Enabling before Configure is a no-op.
func (c *Controller[T]) SetAuto(enabled bool) {
	c.timerMu.Lock()
	defer c.timerMu.Unlock()

	c.stopLocked()
	if !enabled {
		return
	}

	cfg := c.cfg.Load()
	if cfg == nil {
		slog.Debug("Auto requested before configure", "subgame", c.subGame)
		return
	}

	gen := c.gen.Add(1)
	c.speedMs = cfg.SpeedMs
	c.ticker = time.NewTicker(time.Duration(cfg.SpeedMs) * time.Millisecond)
	c.stop = make(chan struct{})
	metrics.SubGamesRunning.Inc()

	c.wg.Add(1)
	go c.run(c.ticker.C, c.stop, gen)
}

// Close stops the timer and waits for its goroutine to exit.
// It must not be called from inside a callback.
func (c *Controller[T]) Close() {
	c.timerMu.Lock()
	c.stopLocked()
	c.timerMu.Unlock()
	c.wg.Wait()
}

// stopLocked must be called with timerMu held.
func (c *Controller[T]) stopLocked() {
	c.gen.Add(1)
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.stop)
	c.ticker = nil
	c.stop = nil
	metrics.SubGamesRunning.Dec()
}

func (c *Controller[T]) run(ticks <-chan time.Time, stop <-chan struct{}, gen uint64) {
	defer c.wg.Done()
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			if c.gen.Load() != gen {
				return
			}
			if _, err := c.perform(context.Background(), gen, metrics.TriggerTimer); err != nil {
				slog.Warn("Timed action failed", "subgame", c.subGame, "error", err)
			}
		}
	}
}

// PerformAction runs one action. Before Configure it returns (nil, nil).
func (c *Controller[T]) PerformAction(ctx context.Context) (*ActionResult[T], error) {
	return c.perform(ctx, 0, metrics.TriggerManual)
}

// Act is PerformAction with a type-erased result.
func (c *Controller[T]) Act(ctx context.Context) (*Summary, error) {
	res, err := c.PerformAction(ctx)
	if err != nil || res == nil {
		return nil, err
	}
	return res.Summary(c.subGame), nil
}

// perform runs the action. A non-zero gen marks a timer tick, which is
// dropped if the timer was stopped or replaced while waiting for the lock.
func (c *Controller[T]) perform(ctx context.Context, gen uint64, trigger string) (*ActionResult[T], error) {
	c.actMu.Lock()
	defer c.actMu.Unlock()

	if gen != 0 && c.gen.Load() != gen {
		return nil, nil
	}
	cfgPtr := c.cfg.Load()
	if cfgPtr == nil {
		return nil, nil
	}
	cfg := *cfgPtr

	if c.callbacks.PlayAction != nil {
		c.callbacks.PlayAction()
	}

	drops := make([]T, 0, cfg.Multi)
	for i := 0; i < cfg.Multi; i++ {
		drops = append(drops, c.resolver.Resolve(c.catalog, cfg.LuckFactor))
	}
	counts := inventory.CountByID(drops)

	credits := 0
	if c.bonusRoll.Float64() < BonusCreditChance {
		credits = BonusCreditAmount
	}

	if c.sink != nil {
		if err := c.sink.Commit(ctx, c.subGame, counts, credits); err != nil {
			// persistence failures never block the loop
			slog.Error("Failed to commit sub-game drops", "subgame", c.subGame, "error", err)
		}
	}

	best := bestItem(drops)
	res := &ActionResult[T]{Drops: drops, Counts: counts, Best: best, Credits: credits}

	metrics.SubGameActions.WithLabelValues(string(c.subGame), trigger).Inc()
	metrics.SubGameDrops.WithLabelValues(string(c.subGame)).Add(float64(len(drops)))
	if credits > 0 {
		metrics.BonusCreditsFound.WithLabelValues(string(c.subGame)).Add(float64(credits))
	}

	c.emit(cfg.Thresholds, res)
	return res, nil
}

func (c *Controller[T]) emit(th domain.Thresholds, res *ActionResult[T]) {
	bestID := res.Best.WeightID()

	if !c.muted.Load() {
		bucket := SoundBucket(bestID, th.BoomDivisor)
		switch {
		case th.BoomID > 0 && bestID >= th.BoomID:
			if c.callbacks.PlayBoom != nil {
				c.callbacks.PlayBoom(bucket)
			}
		case th.RareID > 0 && bestID >= th.RareID:
			if c.callbacks.PlayRare != nil {
				c.callbacks.PlayRare(bucket)
			}
		}
		if res.Credits > 0 && c.callbacks.PlayCoinWin != nil {
			c.callbacks.PlayCoinWin(res.Credits)
		}
	}

	if n, ok := any(res.Best).(Narrator); ok && n.IsNarrative() && c.callbacks.OnFind != nil {
		c.callbacks.OnFind(res.Best)
	}
	if c.callbacks.OnUpdate != nil {
		c.callbacks.OnUpdate(len(res.Drops), bestID, res.Credits)
	}
}

// SoundBucket estimates a rarity bucket from an id: min(15, id/divisor).
func SoundBucket(id, divisor int) int {
	if divisor < 1 {
		divisor = 1
	}
	b := id / divisor
	if b > MaxSoundBucket {
		return MaxSoundBucket
	}
	if b < 0 {
		return 0
	}
	return b
}

// bestItem picks the highest-probability drop, first seen on ties.
func bestItem[T domain.Weighted](drops []T) T {
	var best T
	for i, d := range drops {
		if i == 0 || d.WeightProbability() > best.WeightProbability() {
			best = d
		}
	}
	return best
}

// Summary flattens the result for transport.
func (r *ActionResult[T]) Summary(subGame domain.SubGame) *Summary {
	return &Summary{
		SubGame:  subGame,
		Count:    len(r.Drops),
		BestID:   r.Best.WeightID(),
		BestName: r.Best.WeightName(),
		Counts:   r.Counts,
		Credits:  r.Credits,
	}
}
