package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/jsgotchi/internal/pet"
)

//go:embed defaults/gotchi.yaml
var defaultGotchiYAML []byte

// Default returns the hardcoded configuration. It matches defaults/gotchi.yaml.
func Default() Config {
	t := pet.DefaultTuning()

	multipliers := make(map[string]pet.Multipliers, len(pet.AllStates))
	for _, st := range pet.AllStates {
		multipliers[st.String()] = pet.MultipliersFor(st)
	}

	decay := make([]DecayStep, 0, len(t.SocialDecay))
	for _, step := range t.SocialDecay {
		decay = append(decay, DecayStep{Before: step.Before, Multiplier: step.Multiplier})
	}

	return Config{
		Engine: EngineConfig{
			TickInterval:                800 * time.Millisecond,
			PollInterval:                100 * time.Millisecond,
			BaseFrameworkProgress:       t.BaseFrameworkProgress,
			BaseEnergyIncrease:          t.BaseEnergyIncrease,
			BaseEnergyDecrease:          t.BaseEnergyDecrease,
			MaxEnergy:                   t.MaxEnergy,
			MaxQuality:                  t.MaxQuality,
			FrameworkCreationExp:        t.FrameworkCreationExp,
			ExperienceQualityMultiplier: t.ExperienceQualityMultiplier,
			DrinkAmount:                 t.DrinkAmount,
			QualityLogSize:              t.QualityLogSize,
			LevelBase:                   t.LevelBase,
			LevelExponent:               t.LevelExponent,
		},
		States: StatesConfig{
			ExhaustedBelow:   t.Thresholds.ExhaustedBelow,
			TiredBelow:       t.Thresholds.TiredBelow,
			HyperactiveAbove: t.Thresholds.HyperactiveAbove,
			LonelyAfter:      t.Thresholds.LonelyAfter,
		},
		Multipliers: multipliers,
		Social: SocialConfig{
			PerPeer:         t.SocialPerPeer,
			Decay:           decay,
			Floor:           t.SocialFloor,
			CryingAtOrBelow: t.CryingAtOrBelow,
		},
		Device: DeviceConfig{
			LightBelow:  300,
			CryDuration: 900 * time.Millisecond,
			CryCooldown: 30 * time.Second,
			ClockFormat: "15:04",
		},
		Peer: PeerConfig{
			Enabled:     true,
			Name:        "JSgotchi_Service",
			Listen:      ":7420",
			ScanWindow:  10 * time.Second,
			DialTimeout: 2 * time.Second,
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.gotchi/gotchi.db",
		},
		Journal: JournalConfig{
			Enabled: true,
			Dir:     "~/.gotchi/journal",
		},
		Sound: SoundConfig{
			Backend: "speaker",
			ToneHz:  2000,
			Volume:  0.3,
		},
		SSH: SSHConfig{
			Listen:      ":23234",
			HostKey:     "~/.gotchi/host_key",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGotchiYAML
}
