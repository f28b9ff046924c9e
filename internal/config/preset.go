package config

import (
	"fmt"
	"time"
)

// Preset represents a named difficulty level.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
	PresetFixed  Preset = "fixed"
)

// Presets lists the known presets.
var Presets = []Preset{PresetEasy, PresetNormal, PresetHard, PresetFixed}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(name string) (Preset, error) {
	if name == "" {
		return PresetNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown preset %q (want easy, normal, hard or fixed)", name)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values.
func ApplyPreset(cfg *Config, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Engine.BaseEnergyDecrease = 1
		cfg.Engine.DrinkAmount = 300
		cfg.States.LonelyAfter = 20 * time.Minute
		cfg.Device.CryCooldown = 60 * time.Second
	case PresetHard:
		cfg.Engine.BaseEnergyDecrease = 2
		cfg.Engine.DrinkAmount = 150
		cfg.States.LonelyAfter = 5 * time.Minute
		cfg.Device.CryCooldown = 15 * time.Second
		cfg.Social.ForgetOnAbsence = true
	case PresetFixed:
		// No randomness: every framework comes out at mid quality.
		cfg.Engine.FixedQuality = (cfg.Engine.MaxQuality + 1) / 2
	}
}
