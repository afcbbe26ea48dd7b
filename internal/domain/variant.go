package domain

// VariantID identifies a cosmetic variant layered on high rarity drops.
type VariantID int

// Variant ids, ordered by rarity
const (
	VariantNone        VariantID = 0
	VariantGilded      VariantID = 1
	VariantFrosted     VariantID = 2
	VariantMolten      VariantID = 3
	VariantShadow      VariantID = 4
	VariantRadiant     VariantID = 5
	VariantPrismatic   VariantID = 6
	VariantVoid        VariantID = 7
	VariantAstral      VariantID = 8
	VariantGlitched    VariantID = 9
	VariantSingularity VariantID = 10
)

// VariantTier is a variant with its rarity divisor.
// A variant is rolled with chance 1/Multiplier and scales the item's value by Multiplier.
type VariantTier struct {
	ID         VariantID `json:"id"`
	Name       string    `json:"name"`
	Multiplier float64   `json:"multiplier"`
	Effect     string    `json:"effect,omitempty"`
}

var variantLadder = []VariantTier{
	{ID: VariantNone, Name: "None", Multiplier: 1},
	{ID: VariantGilded, Name: "Gilded", Multiplier: 2, Effect: "gold-trim"},
	{ID: VariantFrosted, Name: "Frosted", Multiplier: 5, Effect: "frost"},
	{ID: VariantMolten, Name: "Molten", Multiplier: 10, Effect: "embers"},
	{ID: VariantShadow, Name: "Shadow", Multiplier: 25, Effect: "smoke"},
	{ID: VariantRadiant, Name: "Radiant", Multiplier: 50, Effect: "glow"},
	{ID: VariantPrismatic, Name: "Prismatic", Multiplier: 100, Effect: "rainbow"},
	{ID: VariantVoid, Name: "Void", Multiplier: 250, Effect: "void-rift"},
	{ID: VariantAstral, Name: "Astral", Multiplier: 1000, Effect: "starfield"},
	{ID: VariantGlitched, Name: "Glitched", Multiplier: 5000, Effect: "scanlines"},
	{ID: VariantSingularity, Name: "Singularity", Multiplier: 10000, Effect: "lensing"},
}

// VariantLadder returns a copy of the variants ordered from None to rarest.
func VariantLadder() []VariantTier {
	out := make([]VariantTier, len(variantLadder))
	copy(out, variantLadder)
	return out
}

// VariantByID looks up a variant.
func VariantByID(id VariantID) (VariantTier, bool) {
	if id < VariantNone || int(id) >= len(variantLadder) {
		return VariantTier{}, false
	}
	return variantLadder[id], true
}

// NoVariant is the fallback variant.
func NoVariant() VariantTier {
	return variantLadder[0]
}

func (id VariantID) String() string {
	if v, ok := VariantByID(id); ok {
		return v.Name
	}
	return "Unknown"
}
