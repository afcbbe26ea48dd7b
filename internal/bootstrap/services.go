package bootstrap

import (
	"fmt"

	"github.com/osse101/LootLoop_Go/internal/catalog"
	"github.com/osse101/LootLoop_Go/internal/config"
	"github.com/osse101/LootLoop_Go/internal/luck"
	"github.com/osse101/LootLoop_Go/internal/rarity"
	"github.com/osse101/LootLoop_Go/internal/rng"
	"github.com/osse101/LootLoop_Go/internal/roll"
	"github.com/osse101/LootLoop_Go/internal/script"
	"github.com/osse101/LootLoop_Go/internal/subgame"
	"github.com/osse101/LootLoop_Go/internal/validation"
)

// Services are the game components built on top of Storage.
type Services struct {
	Catalogs *catalog.Catalogs
	Scripts  *script.Registry
	Bonuses  *luck.StaticBonus
	Roller   roll.Roller
	SubGames subgame.Service
}

// InitializeServices loads the catalogs and tuning and builds the roll
// pipeline and sub-game service. src may be nil for the process RNG and
// listener may be nil when nobody consumes sub-game events.
func InitializeServices(cfg *config.Config, st *Storage, src rng.Source, listener subgame.Listener) (*Services, error) {
	if src == nil {
		src = rng.Default()
	}

	catalogs, err := catalog.Load(validation.NewSchemaValidator(catalog.Schemas()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}

	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadTuning, err)
	}

	scripts := script.NewRegistry()
	bonuses := luck.NewStaticBonus()

	roller := roll.NewRoller(
		st.Progress,
		rarity.NewResolver(src, scripts),
		rarity.NewVariantResolver(src),
		catalogs.Loot,
		src,
		bonuses,
		roll.Options{PrestigeStep: cfg.PrestigeStep, AdminMultiplier: cfg.AdminMultiplier},
	)

	subGames, err := subgame.NewService(st.Progress, catalogs, src, scripts, bonuses, listener, subgame.Options{
		Tuning:          tuning,
		PrestigeStep:    cfg.PrestigeStep,
		AdminMultiplier: cfg.AdminMultiplier,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSubGames, err)
	}

	return &Services{
		Catalogs: catalogs,
		Scripts:  scripts,
		Bonuses:  bonuses,
		Roller:   roller,
		SubGames: subGames,
	}, nil
}
