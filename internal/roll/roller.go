// Package roll runs the primary loot roll: pity-adjusted rarity and variant
// resolution folded into the player aggregate in one atomic update.
package roll

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/LootLoop_Go/internal/catalog"
	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/inventory"
	"github.com/osse101/LootLoop_Go/internal/logger"
	"github.com/osse101/LootLoop_Go/internal/luck"
	"github.com/osse101/LootLoop_Go/internal/metrics"
	"github.com/osse101/LootLoop_Go/internal/pity"
	"github.com/osse101/LootLoop_Go/internal/progress"
	"github.com/osse101/LootLoop_Go/internal/rarity"
	"github.com/osse101/LootLoop_Go/internal/rng"
)

// MaxBatch bounds one roll request.
const MaxBatch = 1000

// Result describes one committed batch.
type Result struct {
	Drops      []domain.Drop `json:"drops"`
	Best       *domain.Drop  `json:"best,omitempty"`
	Kept       int           `json:"kept"`
	Consumed   int           `json:"consumed"`
	PityUsed   bool          `json:"pityUsed"`
	Entropy    int           `json:"entropy"`
	TotalRolls int64         `json:"totalRolls"`
	Luck       float64       `json:"luck"`
}

// SaleResult describes a committed sale.
type SaleResult struct {
	Earned  int64 `json:"earned"`
	Sold    int   `json:"sold"`
	Balance int64 `json:"balance"`
}

// Roller defines the primary roll operations
type Roller interface {
	Roll(ctx context.Context, playerID string, count int, moonMode bool) (*Result, error)
	Sell(ctx context.Context, playerID string, key domain.LootKey, qty int) (*SaleResult, error)
	SellAll(ctx context.Context, playerID string, below domain.RarityID) (*SaleResult, error)
	SetLocked(ctx context.Context, playerID string, key domain.LootKey, locked bool) error
}

// Options carry the tunables the roller reads on every batch.
type Options struct {
	PrestigeStep    float64
	AdminMultiplier float64
	Now             func() time.Time
}

type roller struct {
	store    *progress.Store
	rarity   *rarity.Resolver
	variants *rarity.VariantResolver
	pool     *catalog.LootPool
	picker   rng.Source
	bonus    luck.BonusSource
	opts     Options
}

// NewRoller creates the primary roll pipeline. picker chooses loot text and
// Moon results; bonus may be nil.
func NewRoller(store *progress.Store, rarityResolver *rarity.Resolver, variantResolver *rarity.VariantResolver, pool *catalog.LootPool, picker rng.Source, bonus luck.BonusSource, opts Options) Roller {
	if picker == nil {
		picker = rng.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &roller{
		store:    store,
		rarity:   rarityResolver,
		variants: variantResolver,
		pool:     pool,
		picker:   picker,
		bonus:    bonus,
		opts:     opts,
	}
}

// Roll resolves count drops and commits them with the stats merge.
func (r *roller) Roll(ctx context.Context, playerID string, count int, moonMode bool) (*Result, error) {
	if count < 1 || count > MaxBatch {
		return nil, fmt.Errorf("%w: count must be between 1 and %d, got %d", domain.ErrInvalidInput, MaxBatch, count)
	}

	var bonus luck.Bonus
	if r.bonus != nil {
		bonus = r.bonus.Bonus(ctx, playerID, domain.TrackRoll)
	}

	var result *Result
	_, err := r.store.Update(ctx, playerID, func(prev domain.Progress) (domain.Progress, error) {
		result = r.resolveBatch(&prev, bonus, count, moonMode)
		return prev, nil
	})
	if err != nil {
		return nil, err
	}

	mode := metrics.ModeNormal
	if moonMode {
		mode = metrics.ModeMoon
	}
	metrics.RollsTotal.WithLabelValues(mode).Add(float64(count))
	for _, d := range result.Drops {
		metrics.RollDrops.WithLabelValues(d.RarityID.String()).Inc()
	}
	if result.PityUsed {
		metrics.PityTriggered.Inc()
		logger.FromContext(ctx).Info("Pity roll consumed", "player_id", playerID, "rarity", result.Drops[0].RarityID.String())
	}
	return result, nil
}

// resolveBatch mutates p in place. It runs inside the store's atomic update.
func (r *roller) resolveBatch(p *domain.Progress, bonus luck.Bonus, count int, moonMode bool) *Result {
	normal := luck.Effective(luck.Inputs{
		Level:     p.Stats.Level(domain.LevelKey(domain.TrackRoll, domain.LevelLuck)),
		BonusLuck: bonus.BonusLuck,
		Prestige:  luck.PrestigeMultiplier(p.Stats.Prestige, r.opts.PrestigeStep),
		Admin:     r.opts.AdminMultiplier,
	})

	now := r.opts.Now()
	drops := make([]domain.Drop, 0, count)
	batch := pity.NewBatch(p.Stats.Entropy)

	for i := 0; i < count; i++ {
		rollNumber := p.Stats.TotalRolls + int64(i) + 1
		if moonMode {
			drops = append(drops, r.moonDrop(now, rollNumber))
			continue
		}

		useLuck, _ := batch.LuckFor(normal)
		tier := r.rarity.Resolve(useLuck)
		variant := r.variants.Resolve(tier)
		batch.Record(tier.ID)

		text := r.pool.Pick(tier.ID, r.picker.Float64())
		drops = append(drops, domain.Drop{
			Identity:    text.Text,
			Description: text.Description,
			RarityID:    tier.ID,
			VariantID:   variant.ID,
			Timestamp:   now.UnixMilli(),
			RollNumber:  rollNumber,
		})
	}

	delta, best := inventory.AggregateLoot(p.Loot, drops, now)
	p.Loot = delta.Inventory
	p.Stats.TotalRolls += int64(count)
	if !moonMode {
		p.Stats.Entropy = batch.Entropy()
	}

	return &Result{
		Drops:      drops,
		Best:       best,
		Kept:       delta.Kept,
		Consumed:   delta.Consumed,
		PityUsed:   batch.PityUsed(),
		Entropy:    p.Stats.Entropy,
		TotalRolls: p.Stats.TotalRolls,
		Luck:       normal,
	}
}

// moonDrop is the unweighted Moon path. It never touches pity.
func (r *roller) moonDrop(now time.Time, rollNumber int64) domain.Drop {
	text := r.pool.PickMoon(r.picker.Float64())
	return domain.Drop{
		Identity:    text.Text,
		Description: text.Description,
		RarityID:    domain.RarityMoon,
		VariantID:   domain.VariantNone,
		Timestamp:   now.UnixMilli(),
		RollNumber:  rollNumber,
	}
}

// Sell sells qty units of one loot row and credits the balance.
func (r *roller) Sell(ctx context.Context, playerID string, key domain.LootKey, qty int) (*SaleResult, error) {
	var sale SaleResult
	_, err := r.store.Update(ctx, playerID, func(prev domain.Progress) (domain.Progress, error) {
		inv, earned, err := inventory.SellLoot(prev.Loot, key, qty)
		if err != nil {
			return prev, err
		}
		prev.Loot = inv
		prev.Stats.Balance += earned
		sale = SaleResult{Earned: earned, Sold: qty, Balance: prev.Stats.Balance}
		return prev, nil
	})
	if err != nil {
		return nil, err
	}
	r.recordSale(sale)
	return &sale, nil
}

// SellAll sells every unlocked row below the given rarity.
func (r *roller) SellAll(ctx context.Context, playerID string, below domain.RarityID) (*SaleResult, error) {
	if below < domain.RarityCommon || below > domain.RarityInfinite+1 {
		return nil, fmt.Errorf("%w: rarity floor %d", domain.ErrInvalidInput, below)
	}
	var sale SaleResult
	_, err := r.store.Update(ctx, playerID, func(prev domain.Progress) (domain.Progress, error) {
		inv, earned, sold := inventory.SellAllLoot(prev.Loot, below)
		prev.Loot = inv
		prev.Stats.Balance += earned
		sale = SaleResult{Earned: earned, Sold: sold, Balance: prev.Stats.Balance}
		return prev, nil
	})
	if err != nil {
		return nil, err
	}
	r.recordSale(sale)
	return &sale, nil
}

// SetLocked toggles bulk-sell protection on a loot row.
func (r *roller) SetLocked(ctx context.Context, playerID string, key domain.LootKey, locked bool) error {
	_, err := r.store.Update(ctx, playerID, func(prev domain.Progress) (domain.Progress, error) {
		inv, err := inventory.SetLootLocked(prev.Loot, key, locked)
		if err != nil {
			return prev, err
		}
		prev.Loot = inv
		return prev, nil
	})
	return err
}

func (r *roller) recordSale(sale SaleResult) {
	metrics.CoinsEarned.Add(float64(sale.Earned))
	metrics.LootItemsSold.Add(float64(sale.Sold))
}
