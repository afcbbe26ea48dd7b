// Package rarity resolves loot rolls against the rarity and variant ladders.
package rarity

import (
	"log/slog"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/luck"
	"github.com/osse101/LootLoop_Go/internal/rng"
	"github.com/osse101/LootLoop_Go/internal/script"
)

// Resolver picks a rarity tier for one roll.
type Resolver struct {
	src      rng.Source
	checker  script.Checker
	rarestUp []domain.RarityTier
}

// NewResolver creates a resolver. checker may be nil.
func NewResolver(src rng.Source, checker script.Checker) *Resolver {
	if src == nil {
		src = rng.Default()
	}
	ladder := domain.RarityLadder()
	rarest := make([]domain.RarityTier, 0, len(ladder))
	for i := len(ladder) - 1; i >= 0; i-- {
		rarest = append(rarest, ladder[i])
	}
	return &Resolver{src: src, checker: checker, rarestUp: rarest}
}

// Resolve draws once and scans from the rarest tier down. The first tier
// whose threshold (1/probability)*effectiveLuck exceeds the draw wins, so
// overlapping thresholds always favour the rarer tier. Common is the fallback.
func (r *Resolver) Resolve(effectiveLuck float64) domain.RarityTier {
	if tier, ok := r.scripted(); ok {
		return tier
	}

	effectiveLuck = luck.Sanitize(effectiveLuck)
	roll := r.src.Float64()
	for _, tier := range r.rarestUp {
		if roll < (1/tier.Probability)*effectiveLuck {
			return tier
		}
	}
	return domain.CommonTier()
}

func (r *Resolver) scripted() (domain.RarityTier, bool) {
	if r.checker == nil {
		return domain.RarityTier{}, false
	}
	name, ok := r.checker.CheckScript(domain.CategoryLoot)
	if !ok {
		return domain.RarityTier{}, false
	}
	tier, found := domain.RarityByName(name)
	if !found || tier.IsMoonTier() {
		slog.Debug("Scripted rarity not on ladder, rolling normally", "target", name)
		return domain.RarityTier{}, false
	}
	return tier, true
}
