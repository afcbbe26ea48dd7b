package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRarityLadder_StrictlyOrdered(t *testing.T) {
	ladder := RarityLadder()
	require.Len(t, ladder, 15)

	for i := 1; i < len(ladder); i++ {
		assert.Equal(t, ladder[i-1].ID+1, ladder[i].ID)
		assert.Greater(t, ladder[i].Probability, ladder[i-1].Probability, "tier %s", ladder[i].Name)
	}
}

func TestRarityLadder_ReturnsCopy(t *testing.T) {
	ladder := RarityLadder()
	ladder[0].Probability = 999

	assert.Equal(t, float64(1), CommonTier().Probability)
}

func TestRarityByID(t *testing.T) {
	tier, ok := RarityByID(RarityLegendary)
	require.True(t, ok)
	assert.Equal(t, "Legendary", tier.Name)

	moon, ok := RarityByID(RarityMoon)
	require.True(t, ok)
	assert.Equal(t, "Moon", moon.Name)

	_, ok = RarityByID(0)
	assert.False(t, ok)
	_, ok = RarityByID(16)
	assert.False(t, ok)
}

func TestRarityByName(t *testing.T) {
	tier, ok := RarityByName("Cosmic")
	require.True(t, ok)
	assert.Equal(t, RarityCosmic, tier.ID)

	_, ok = RarityByName("cosmic")
	assert.False(t, ok)
}

func TestRarityFloors(t *testing.T) {
	tests := []struct {
		id          RarityID
		qualifies   bool
		kept        bool
		hasVariants bool
	}{
		{RarityCommon, false, false, false},
		{RarityUncommon, false, false, false},
		{RarityRare, false, true, false},
		{RarityEpic, false, true, true},
		{RarityLegendary, true, true, true},
		{RarityInfinite, true, true, true},
		{RarityMoon, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			assert.Equal(t, tt.qualifies, tt.id.Qualifies())
			assert.Equal(t, tt.kept, tt.id.Kept())
			assert.Equal(t, tt.hasVariants, tt.id.HasVariants())
		})
	}
}

func TestVariantLadder_StrictlyIncreasing(t *testing.T) {
	variants := VariantLadder()
	require.Len(t, variants, 11)
	assert.Equal(t, VariantNone, variants[0].ID)

	for i := 1; i < len(variants); i++ {
		assert.Greater(t, variants[i].Multiplier, variants[i-1].Multiplier)
	}
	assert.Equal(t, float64(10000), variants[len(variants)-1].Multiplier)
}

func TestPlayerStats_CloneDoesNotAlias(t *testing.T) {
	s := PlayerStats{Levels: map[string]int{"mining.luck": 2}}
	c := s.Clone()
	c.Levels["mining.luck"] = 5

	assert.Equal(t, 2, s.Level("mining.luck"))
	assert.Equal(t, 5, c.Level("mining.luck"))
	assert.Equal(t, 0, PlayerStats{}.Level("missing"))
}

func TestLevelKey(t *testing.T) {
	assert.Equal(t, "fishing.speed", LevelKey(SubGameFishing, LevelSpeed))
}
