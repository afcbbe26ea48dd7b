package domain

// RarityID identifies a rung on the main reward ladder.
// Higher ids are rarer.
type RarityID int

// Ladder rungs
const (
	RarityCommon       RarityID = 1
	RarityUncommon     RarityID = 2
	RarityRare         RarityID = 3
	RarityEpic         RarityID = 4
	RarityLegendary    RarityID = 5
	RarityMythic       RarityID = 6
	RarityDivine       RarityID = 7
	RarityCelestial    RarityID = 8
	RarityCosmic       RarityID = 9
	RarityEternal      RarityID = 10
	RarityTranscendent RarityID = 11
	RarityPrimordial   RarityID = 12
	RarityOmniscient   RarityID = 13
	RarityAbsolute     RarityID = 14
	RarityInfinite     RarityID = 15

	// RarityMoon sits on a parallel track and is not comparable with the ladder.
	RarityMoon RarityID = 100
)

// Rarity floors used by the roll pipeline
const (
	// EpicFloor is the lowest rarity that can carry a variant.
	EpicFloor = RarityEpic

	// KeepFloor is the lowest rarity written to the loot inventory.
	// Anything below is counted but consumed.
	KeepFloor = RarityRare

	// QualifyingFloor is the lowest rarity that resets pity.
	QualifyingFloor = RarityLegendary
)

// RarityTier is one immutable rung of the reward ladder.
// Probability reads as "1 in Probability".
type RarityTier struct {
	ID          RarityID `json:"id"`
	Name        string   `json:"name"`
	Probability float64  `json:"probability"`
	Color       string   `json:"color"`
}

// rarityLadder is ordered from most common to rarest.
var rarityLadder = []RarityTier{
	{ID: RarityCommon, Name: "Common", Probability: 1, Color: "#9ca3af"},
	{ID: RarityUncommon, Name: "Uncommon", Probability: 4, Color: "#22c55e"},
	{ID: RarityRare, Name: "Rare", Probability: 16, Color: "#3b82f6"},
	{ID: RarityEpic, Name: "Epic", Probability: 64, Color: "#a855f7"},
	{ID: RarityLegendary, Name: "Legendary", Probability: 256, Color: "#f59e0b"},
	{ID: RarityMythic, Name: "Mythic", Probability: 1024, Color: "#ef4444"},
	{ID: RarityDivine, Name: "Divine", Probability: 4096, Color: "#fde047"},
	{ID: RarityCelestial, Name: "Celestial", Probability: 16384, Color: "#67e8f9"},
	{ID: RarityCosmic, Name: "Cosmic", Probability: 65536, Color: "#6366f1"},
	{ID: RarityEternal, Name: "Eternal", Probability: 262144, Color: "#14b8a6"},
	{ID: RarityTranscendent, Name: "Transcendent", Probability: 1048576, Color: "#f472b6"},
	{ID: RarityPrimordial, Name: "Primordial", Probability: 4194304, Color: "#84cc16"},
	{ID: RarityOmniscient, Name: "Omniscient", Probability: 16777216, Color: "#e879f9"},
	{ID: RarityAbsolute, Name: "Absolute", Probability: 67108864, Color: "#f8fafc"},
	{ID: RarityInfinite, Name: "Infinite", Probability: 268435456, Color: "#000000"},
}

var moonTier = RarityTier{ID: RarityMoon, Name: "Moon", Probability: 0, Color: "#cbd5e1"}

// RarityLadder returns a copy of the ladder ordered from most common to rarest.
func RarityLadder() []RarityTier {
	out := make([]RarityTier, len(rarityLadder))
	copy(out, rarityLadder)
	return out
}

// MoonTier returns the off-ladder Moon tier.
func MoonTier() RarityTier {
	return moonTier
}

// RarityByID looks up a tier, including Moon.
func RarityByID(id RarityID) (RarityTier, bool) {
	if id == RarityMoon {
		return moonTier, true
	}
	if id < RarityCommon || id > RarityInfinite {
		return RarityTier{}, false
	}
	return rarityLadder[id-1], true
}

// RarityByName looks up a tier by display name, including Moon.
func RarityByName(name string) (RarityTier, bool) {
	if name == moonTier.Name {
		return moonTier, true
	}
	for _, t := range rarityLadder {
		if t.Name == name {
			return t, true
		}
	}
	return RarityTier{}, false
}

// CommonTier is the resolver fallback.
func CommonTier() RarityTier {
	return rarityLadder[0]
}

// IsMoon reports whether the id is on the Moon track.
func (id RarityID) IsMoon() bool {
	return id == RarityMoon
}

// Qualifies reports whether a result at this rarity resets pity.
func (id RarityID) Qualifies() bool {
	return !id.IsMoon() && id >= QualifyingFloor
}

// Kept reports whether a loot drop at this rarity is stored in the inventory.
func (id RarityID) Kept() bool {
	return id.IsMoon() || id >= KeepFloor
}

// HasVariants reports whether a tier at this rarity rolls a variant.
func (id RarityID) HasVariants() bool {
	return !id.IsMoon() && id >= EpicFloor
}

func (id RarityID) String() string {
	if t, ok := RarityByID(id); ok {
		return t.Name
	}
	return "Unknown"
}

// IsMoonTier reports whether the tier is the off-ladder Moon tier.
func (t RarityTier) IsMoonTier() bool {
	return t.ID.IsMoon()
}
