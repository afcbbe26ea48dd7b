package domain

// Category tags a resource catalog. Scripted overrides match on it.
type Category string

const (
	CategoryLoot  Category = "loot"
	CategoryOre   Category = "ore"
	CategoryFish  Category = "fish"
	CategoryPlant Category = "plant"
	CategoryMoon  Category = "moon"
)

// Dimension selects which ore catalog a mine draws from.
type Dimension string

const (
	DimensionNormal Dimension = "normal"
	DimensionGold   Dimension = "gold"
	DimensionPrism  Dimension = "prism"
)

// Weighted is the capability the shared resource resolver depends on.
// Concrete catalogs keep their own types everywhere else.
type Weighted interface {
	WeightID() int
	WeightProbability() float64
	WeightName() string
}

// ResourceDef is the shape shared by every resource catalog entry.
// IDs are dense ordinals, low ids are common. Probability reads as "1 in Probability".
type ResourceDef struct {
	ID          int      `json:"id" validate:"min=1"`
	Name        string   `json:"name" validate:"required"`
	Probability float64  `json:"probability" validate:"gte=0"`
	Category    Category `json:"category"`
	Narrative   bool     `json:"narrative,omitempty"`
	Description string   `json:"description,omitempty"`
}

func (d ResourceDef) WeightID() int              { return d.ID }
func (d ResourceDef) WeightProbability() float64 { return d.Probability }
func (d ResourceDef) WeightName() string         { return d.Name }

// Ore is a mining drop; each dimension has its own catalog.
type Ore struct {
	ResourceDef
	Dimension Dimension `json:"dimension"`
}

// Fish is a fishing drop.
type Fish struct {
	ResourceDef
}

// Plant is a harvesting drop.
type Plant struct {
	ResourceDef
}

// MoonItem is a drop from the moon catalog.
type MoonItem struct {
	ResourceDef
}

// Catalog is a named, static list of weighted entries.
// Fallback is returned when Entries is empty.
type Catalog[T Weighted] struct {
	Name     string
	Category Category
	Entries  []T
	Fallback T
}

// IsNarrative reports whether the entry carries story text worth surfacing.
func (d ResourceDef) IsNarrative() bool { return d.Narrative }
