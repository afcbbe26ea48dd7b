package rarity

import (
	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/rng"
)

// VariantResolver rolls the cosmetic variant layered on Epic and rarer drops.
type VariantResolver struct {
	src      rng.Source
	rarestUp []domain.VariantTier
}

// NewVariantResolver creates a variant resolver.
func NewVariantResolver(src rng.Source) *VariantResolver {
	if src == nil {
		src = rng.Default()
	}
	ladder := domain.VariantLadder()
	// None (index 0) is the fallback and is never part of the scan
	rarest := make([]domain.VariantTier, 0, len(ladder)-1)
	for i := len(ladder) - 1; i >= 1; i-- {
		rarest = append(rarest, ladder[i])
	}
	return &VariantResolver{src: src, rarestUp: rarest}
}

// Resolve returns None without drawing for tiers below EpicFloor and for Moon.
func (v *VariantResolver) Resolve(tier domain.RarityTier) domain.VariantTier {
	if !tier.ID.HasVariants() {
		return domain.NoVariant()
	}

	roll := v.src.Float64()
	for _, variant := range v.rarestUp {
		if roll < 1/variant.Multiplier {
			return variant
		}
	}
	return domain.NoVariant()
}
