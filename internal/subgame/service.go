// Package subgame owns every player's sub-game loop controllers and keeps
// their live configuration in step with the player's progress.
package subgame

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/LootLoop_Go/internal/catalog"
	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/inventory"
	"github.com/osse101/LootLoop_Go/internal/logger"
	"github.com/osse101/LootLoop_Go/internal/loop"
	"github.com/osse101/LootLoop_Go/internal/luck"
	"github.com/osse101/LootLoop_Go/internal/progress"
	"github.com/osse101/LootLoop_Go/internal/resource"
	"github.com/osse101/LootLoop_Go/internal/rng"
	"github.com/osse101/LootLoop_Go/internal/script"
)

// Status is a controller's externally visible state.
type Status struct {
	SubGame domain.SubGame    `json:"subGame"`
	State   string            `json:"state"`
	Muted   bool              `json:"muted"`
	Config  domain.LoopConfig `json:"config"`
}

// Service defines the sub-game operations
type Service interface {
	Act(ctx context.Context, playerID string, sg domain.SubGame) (*loop.Summary, error)
	SetAuto(ctx context.Context, playerID string, sg domain.SubGame, enabled bool) (*Status, error)
	SetMuted(ctx context.Context, playerID string, sg domain.SubGame, muted bool) (*Status, error)
	Status(ctx context.Context, playerID string, sg domain.SubGame) (*Status, error)
	Refresh(ctx context.Context, playerID string) error
	LockResource(ctx context.Context, playerID string, sg domain.SubGame, id int, locked bool) error
	ConsumeResource(ctx context.Context, playerID string, sg domain.SubGame, id, qty int) (int, error)
	Shutdown(ctx context.Context) error
}

// runner is the type-erased face of loop.Controller[T].
type runner interface {
	Act(ctx context.Context) (*loop.Summary, error)
	Configure(cfg domain.LoopConfig)
	Config() (domain.LoopConfig, bool)
	SetAuto(enabled bool)
	SetMuted(muted bool)
	Muted() bool
	State() loop.State
	Close()
}

// Options are the static inputs to every loop config.
type Options struct {
	Tuning          map[domain.SubGame]luck.Tuning
	PrestigeStep    float64
	AdminMultiplier float64
	Now             func() time.Time
}

type resolvers struct {
	ores   *resource.Resolver[domain.Ore]
	fish   *resource.Resolver[domain.Fish]
	plants *resource.Resolver[domain.Plant]
	moon   *resource.Resolver[domain.MoonItem]
}

type service struct {
	store     *progress.Store
	catalogs  *catalog.Catalogs
	resolvers resolvers
	bonus     luck.BonusSource
	listener  Listener
	bonusRoll rng.Source
	opts      Options

	mu      sync.Mutex
	players map[string]map[domain.SubGame]runner
}

// NewService creates the sub-game service and subscribes it to progress
// changes so upgrades reach running loops on their next tick.
func NewService(store *progress.Store, catalogs *catalog.Catalogs, src rng.Source, scripts script.Checker, bonus luck.BonusSource, listener Listener, opts Options) (Service, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if src == nil {
		src = rng.Default()
	}

	s := &service{
		store:     store,
		catalogs:  catalogs,
		bonus:     bonus,
		listener:  listener,
		bonusRoll: src,
		opts:      opts,
		players:   make(map[string]map[domain.SubGame]runner),
	}

	var err error
	if s.resolvers.ores, err = resource.NewResolver[domain.Ore](src, scripts, 0); err != nil {
		return nil, err
	}
	if s.resolvers.fish, err = resource.NewResolver[domain.Fish](src, scripts, 0); err != nil {
		return nil, err
	}
	if s.resolvers.plants, err = resource.NewResolver[domain.Plant](src, scripts, 0); err != nil {
		return nil, err
	}
	if s.resolvers.moon, err = resource.NewResolver[domain.MoonItem](src, scripts, 0); err != nil {
		return nil, err
	}

	store.Observe(s)
	return s, nil
}

// Act performs one manual action.
func (s *service) Act(ctx context.Context, playerID string, sg domain.SubGame) (*loop.Summary, error) {
	r, err := s.runnerFor(ctx, playerID, sg)
	if err != nil {
		return nil, err
	}
	return r.Act(ctx)
}

// SetAuto toggles the timer for one sub-game.
func (s *service) SetAuto(ctx context.Context, playerID string, sg domain.SubGame, enabled bool) (*Status, error) {
	r, err := s.runnerFor(ctx, playerID, sg)
	if err != nil {
		return nil, err
	}
	r.SetAuto(enabled)
	logger.FromContext(ctx).Info("Sub-game auto toggled", "player_id", playerID, "subgame", sg, "enabled", enabled)
	return statusOf(sg, r), nil
}

// SetMuted toggles rarity sounds for one sub-game.
func (s *service) SetMuted(ctx context.Context, playerID string, sg domain.SubGame, muted bool) (*Status, error) {
	r, err := s.runnerFor(ctx, playerID, sg)
	if err != nil {
		return nil, err
	}
	r.SetMuted(muted)
	return statusOf(sg, r), nil
}

// Status reports one controller's state.
func (s *service) Status(ctx context.Context, playerID string, sg domain.SubGame) (*Status, error) {
	r, err := s.runnerFor(ctx, playerID, sg)
	if err != nil {
		return nil, err
	}
	return statusOf(sg, r), nil
}

// Refresh recomputes a player's loop configs after an external bonus
// changed. The reconfigure runs under the player lock so a concurrent
// commit cannot be overwritten by an older snapshot.
func (s *service) Refresh(ctx context.Context, playerID string) error {
	return s.store.View(ctx, playerID, func(snapshot domain.Progress) {
		s.Changed(playerID, snapshot)
	})
}

// LockResource protects or releases one resource row.
func (s *service) LockResource(ctx context.Context, playerID string, sg domain.SubGame, id int, locked bool) error {
	_, err := s.store.Update(ctx, playerID, func(prev domain.Progress) (domain.Progress, error) {
		inv, err := prev.Resources(sg)
		if err != nil {
			return prev, err
		}
		inv, err = inventory.SetResourceLocked(inv, id, locked)
		if err != nil {
			return prev, err
		}
		return prev, prev.SetResources(sg, inv)
	})
	return err
}

// ConsumeResource spends qty of a resource and returns what remains.
func (s *service) ConsumeResource(ctx context.Context, playerID string, sg domain.SubGame, id, qty int) (int, error) {
	remaining := 0
	_, err := s.store.Update(ctx, playerID, func(prev domain.Progress) (domain.Progress, error) {
		inv, err := prev.Resources(sg)
		if err != nil {
			return prev, err
		}
		inv, err = inventory.ConsumeResource(inv, id, qty)
		if err != nil {
			return prev, err
		}
		_, remaining = inventory.FindResourceSlot(inv, id)
		return prev, prev.SetResources(sg, inv)
	})
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info("Resource consumed", "player_id", playerID, "subgame", sg, "id", id, "qty", qty)
	return remaining, nil
}

// Shutdown stops every timer.
func (s *service) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	var all []runner
	for _, games := range s.players {
		for _, r := range games {
			all = append(all, r)
		}
	}
	s.players = make(map[string]map[domain.SubGame]runner)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for _, r := range all {
			r.Close()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("sub-game shutdown: %w", ctx.Err())
	}
}

// Changed recomputes the live config of every controller the player owns.
func (s *service) Changed(playerID string, snapshot domain.Progress) {
	s.mu.Lock()
	games := make(map[domain.SubGame]runner, len(s.players[playerID]))
	for sg, r := range s.players[playerID] {
		games[sg] = r
	}
	s.mu.Unlock()

	for sg, r := range games {
		r.Configure(s.buildConfig(context.Background(), playerID, sg, snapshot.Stats))
	}
}

func (s *service) runnerFor(ctx context.Context, playerID string, sg domain.SubGame) (runner, error) {
	if playerID == "" {
		return nil, fmt.Errorf("%w: empty player id", domain.ErrInvalidInput)
	}
	if _, ok := s.opts.Tuning[sg]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSubGame, sg)
	}

	s.mu.Lock()
	if r, ok := s.players[playerID][sg]; ok {
		s.mu.Unlock()
		return r, nil
	}
	s.mu.Unlock()

	r, err := s.build(playerID, sg)
	if err != nil {
		return nil, err
	}

	// configure and register under the player lock so no commit slips
	// between the snapshot and the runner becoming visible to Changed
	var existing runner
	err = s.store.View(ctx, playerID, func(snapshot domain.Progress) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.players[playerID][sg]; ok {
			// lost a creation race; the fresh runner never started a timer
			existing = cur
			return
		}
		r.Configure(s.buildConfig(ctx, playerID, sg, snapshot.Stats))
		if s.players[playerID] == nil {
			s.players[playerID] = make(map[domain.SubGame]runner)
		}
		s.players[playerID][sg] = r
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	return r, nil
}

func (s *service) build(playerID string, sg domain.SubGame) (runner, error) {
	sink := &storeSink{store: s.store, playerID: playerID, now: s.opts.Now}

	switch sg {
	case domain.SubGameMining, domain.SubGameGoldMining, domain.SubGamePrismMining:
		cat, err := s.catalogs.OreCatalog(dimensionOf(sg))
		if err != nil {
			return nil, err
		}
		return loop.New(sg, s.resolvers.ores, cat, sink, s.bonusRoll, callbacksFor[domain.Ore](playerID, sg, s.listener)), nil
	case domain.SubGameFishing:
		return loop.New(sg, s.resolvers.fish, s.catalogs.Fish, sink, s.bonusRoll, callbacksFor[domain.Fish](playerID, sg, s.listener)), nil
	case domain.SubGameHarvesting:
		return loop.New(sg, s.resolvers.plants, s.catalogs.Plants, sink, s.bonusRoll, callbacksFor[domain.Plant](playerID, sg, s.listener)), nil
	case domain.SubGameMoon:
		return loop.New(sg, s.resolvers.moon, s.catalogs.Moon, sink, s.bonusRoll, callbacksFor[domain.MoonItem](playerID, sg, s.listener)), nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSubGame, sg)
}

func (s *service) buildConfig(ctx context.Context, playerID string, sg domain.SubGame, stats domain.PlayerStats) domain.LoopConfig {
	var bonus luck.Bonus
	if s.bonus != nil {
		bonus = s.bonus.Bonus(ctx, playerID, sg)
	}
	return luck.BuildLoopConfig(
		s.opts.Tuning[sg],
		luck.LevelsFor(stats, sg),
		bonus,
		luck.PrestigeMultiplier(stats.Prestige, s.opts.PrestigeStep),
		s.opts.AdminMultiplier,
	)
}

func dimensionOf(sg domain.SubGame) domain.Dimension {
	switch sg {
	case domain.SubGameGoldMining:
		return domain.DimensionGold
	case domain.SubGamePrismMining:
		return domain.DimensionPrism
	default:
		return domain.DimensionNormal
	}
}

func statusOf(sg domain.SubGame, r runner) *Status {
	cfg, _ := r.Config()
	return &Status{SubGame: sg, State: r.State().String(), Muted: r.Muted(), Config: cfg}
}
