// Package catalog loads the embedded resource catalogs and loot text pools.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/validation"
)

//go:embed data/*.json
var dataFS embed.FS

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema file names
const (
	CatalogSchema = "catalog.schema.json"
	LootSchema    = "loot.schema.json"
)

// Schemas exposes the embedded schema directory to a validator.
func Schemas() fs.FS {
	sub, err := fs.Sub(schemaFS, "schemas")
	if err != nil {
		panic(err) // embedded path is fixed at compile time
	}
	return sub
}

// Catalogs is every static table the service draws from.
type Catalogs struct {
	Ores   map[domain.Dimension]domain.Catalog[domain.Ore]
	Fish   domain.Catalog[domain.Fish]
	Plants domain.Catalog[domain.Plant]
	Moon   domain.Catalog[domain.MoonItem]
	Loot   *LootPool
}

type catalogFile struct {
	Name      string               `json:"name"`
	Category  domain.Category      `json:"category"`
	Dimension domain.Dimension     `json:"dimension"`
	Entries   []domain.ResourceDef `json:"entries"`
}

// Load reads and validates every embedded catalog.
func Load(v validation.SchemaValidator) (*Catalogs, error) {
	c := &Catalogs{Ores: make(map[domain.Dimension]domain.Catalog[domain.Ore], 3)}

	for _, f := range []string{"ores_normal", "ores_gold", "ores_prism"} {
		file, err := readCatalog(v, f)
		if err != nil {
			return nil, err
		}
		c.Ores[file.Dimension] = build(file, func(d domain.ResourceDef) domain.Ore {
			return domain.Ore{ResourceDef: d, Dimension: file.Dimension}
		})
	}

	fish, err := readCatalog(v, "fish")
	if err != nil {
		return nil, err
	}
	c.Fish = build(fish, func(d domain.ResourceDef) domain.Fish { return domain.Fish{ResourceDef: d} })

	plants, err := readCatalog(v, "plants")
	if err != nil {
		return nil, err
	}
	c.Plants = build(plants, func(d domain.ResourceDef) domain.Plant { return domain.Plant{ResourceDef: d} })

	moon, err := readCatalog(v, "moon")
	if err != nil {
		return nil, err
	}
	c.Moon = build(moon, func(d domain.ResourceDef) domain.MoonItem { return domain.MoonItem{ResourceDef: d} })

	raw, err := dataFS.ReadFile("data/loot.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read loot pools: %w", err)
	}
	if err := v.ValidateBytes(raw, LootSchema); err != nil {
		return nil, fmt.Errorf("invalid loot pools: %w", err)
	}
	c.Loot, err = ParseLootPool(raw)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// OreCatalog returns the catalog for a mining dimension.
func (c *Catalogs) OreCatalog(dim domain.Dimension) (domain.Catalog[domain.Ore], error) {
	cat, ok := c.Ores[dim]
	if !ok {
		return domain.Catalog[domain.Ore]{}, fmt.Errorf("%w: ores/%s", domain.ErrUnknownCatalog, dim)
	}
	return cat, nil
}

func readCatalog(v validation.SchemaValidator, name string) (catalogFile, error) {
	var file catalogFile
	raw, err := dataFS.ReadFile("data/" + name + ".json")
	if err != nil {
		return file, fmt.Errorf("failed to read catalog %s: %w", name, err)
	}
	if err := v.ValidateBytes(raw, CatalogSchema); err != nil {
		return file, fmt.Errorf("invalid catalog %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return file, fmt.Errorf("failed to decode catalog %s: %w", name, err)
	}
	if err := checkIDs(file); err != nil {
		return file, err
	}
	return file, nil
}

// checkIDs enforces unique ids. The schema cannot express this.
func checkIDs(file catalogFile) error {
	seen := make(map[int]struct{}, len(file.Entries))
	for _, e := range file.Entries {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: catalog %s has duplicate id %d", domain.ErrInvalidInput, file.Name, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

func build[T domain.Weighted](file catalogFile, wrap func(domain.ResourceDef) T) domain.Catalog[T] {
	defs := slices.Clone(file.Entries)
	slices.SortFunc(defs, func(a, b domain.ResourceDef) int { return a.ID - b.ID })

	entries := make([]T, 0, len(defs))
	for _, d := range defs {
		d.Category = file.Category
		entries = append(entries, wrap(d))
	}
	out := domain.Catalog[T]{Name: file.Name, Category: file.Category, Entries: entries}
	if len(entries) > 0 {
		out.Fallback = entries[0]
	}
	return out
}
