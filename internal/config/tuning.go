package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/osse101/LootLoop_Go/internal/domain"
	"github.com/osse101/LootLoop_Go/internal/luck"
)

//go:embed tuning.yaml
var defaultTuning []byte

// TuningFile is the on-disk shape of the per sub-game tuning table.
type TuningFile struct {
	SubGames map[domain.SubGame]luck.Tuning `yaml:"subgames" validate:"required,dive"`
}

// LoadTuning returns the embedded defaults, overlaid with the entries of
// overridePath when it is non-empty. Every sub-game must end up tuned.
func LoadTuning(overridePath string) (map[domain.SubGame]luck.Tuning, error) {
	base, err := ParseTuning(defaultTuning)
	if err != nil {
		return nil, fmt.Errorf("embedded tuning: %w", err)
	}

	if overridePath != "" {
		raw, err := os.ReadFile(overridePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read tuning file %s: %w", overridePath, err)
		}
		override, err := ParseTuning(raw)
		if err != nil {
			return nil, fmt.Errorf("tuning file %s: %w", overridePath, err)
		}
		for sg, t := range override {
			base[sg] = t
		}
	}

	for _, sg := range domain.AllSubGames() {
		if _, ok := base[sg]; !ok {
			return nil, fmt.Errorf("%w: no tuning for %s", domain.ErrInvalidInput, sg)
		}
	}
	return base, nil
}

// ParseTuning decodes and validates one tuning document.
func ParseTuning(raw []byte) (map[domain.SubGame]luck.Tuning, error) {
	var file TuningFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	known := make(map[domain.SubGame]bool)
	for _, sg := range domain.AllSubGames() {
		known[sg] = true
	}
	for sg, t := range file.SubGames {
		if !known[sg] {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSubGame, sg)
		}
		if t.MinSpeedMs > t.BaseSpeedMs {
			return nil, fmt.Errorf("%w: %s min_speed_ms exceeds base_speed_ms", domain.ErrInvalidInput, sg)
		}
	}
	return file.SubGames, nil
}
