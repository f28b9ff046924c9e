// Package config provides YAML-based pet configuration loading, presets and
// environment overrides.
package config

import (
	"time"

	"github.com/vovakirdan/jsgotchi/internal/pet"
)

// Config is the complete runtime configuration of a pet device.
type Config struct {
	Engine      EngineConfig               `yaml:"engine"`
	States      StatesConfig               `yaml:"states"`
	Multipliers map[string]pet.Multipliers `yaml:"multipliers"`
	Social      SocialConfig               `yaml:"social"`
	Device      DeviceConfig               `yaml:"device"`
	Peer        PeerConfig                 `yaml:"peer"`
	Storage     StorageConfig              `yaml:"storage"`
	Journal     JournalConfig              `yaml:"journal"`
	Sound       SoundConfig                `yaml:"sound"`
	SSH         SSHConfig                  `yaml:"ssh"`
}

// EngineConfig holds the progression constants and loop timing.
type EngineConfig struct {
	TickInterval time.Duration `yaml:"tick_interval"`
	PollInterval time.Duration `yaml:"poll_interval"`

	BaseFrameworkProgress       int     `yaml:"base_framework_progress"`
	BaseEnergyIncrease          int     `yaml:"base_energy_increase"`
	BaseEnergyDecrease          int     `yaml:"base_energy_decrease"`
	MaxEnergy                   int     `yaml:"max_energy"`
	MaxQuality                  int     `yaml:"max_quality"`
	FrameworkCreationExp        int     `yaml:"framework_creation_exp"`
	ExperienceQualityMultiplier int     `yaml:"experience_quality_multiplier"`
	DrinkAmount                 int     `yaml:"drink_amount"`
	QualityLogSize              int     `yaml:"quality_log_size"`
	LevelBase                   float64 `yaml:"level_base"`
	LevelExponent               float64 `yaml:"level_exponent"`

	// FixedQuality, when > 0, replaces the random roll for every framework.
	FixedQuality int `yaml:"fixed_quality"`
}

// StatesConfig defines the avatar state thresholds.
type StatesConfig struct {
	ExhaustedBelow   int           `yaml:"exhausted_below"`
	TiredBelow       int           `yaml:"tired_below"`
	HyperactiveAbove int           `yaml:"hyperactive_above"`
	LonelyAfter      time.Duration `yaml:"lonely_after"`
}

// SocialConfig defines the social multiplier and its decay.
type SocialConfig struct {
	PerPeer         float64     `yaml:"per_peer"`
	Decay           []DecayStep `yaml:"decay"`
	Floor           float64     `yaml:"floor"`
	CryingAtOrBelow float64     `yaml:"crying_at_or_below"`
	ForgetOnAbsence bool        `yaml:"forget_on_absence"` // clear peers when a scan finds nobody
}

// DecayStep is one row of the social decay table.
type DecayStep struct {
	Before     time.Duration `yaml:"before"`
	Multiplier float64       `yaml:"multiplier"`
}

// DeviceConfig holds the actuator behaviour of the device.
type DeviceConfig struct {
	LightBelow  int           `yaml:"light_below"` // LED on while energy < this
	CryDuration time.Duration `yaml:"cry_duration"`
	CryCooldown time.Duration `yaml:"cry_cooldown"`
	ClockFormat string        `yaml:"clock_format"`
}

// PeerConfig configures the presence beacon and the discovery scanner.
type PeerConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Name        string        `yaml:"name"`
	Listen      string        `yaml:"listen"`
	Peers       []string      `yaml:"peers,omitempty"`
	ScanWindow  time.Duration `yaml:"scan_window"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// StorageConfig configures the SQLite history.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// JournalConfig configures the compressed event journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// SoundConfig selects and tunes the buzzer backend.
type SoundConfig struct {
	Backend string  `yaml:"backend"` // "speaker", "bell" or "none"
	ToneHz  float64 `yaml:"tone_hz"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// SSHConfig configures the shared-pet SSH server.
type SSHConfig struct {
	Listen      string        `yaml:"listen"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Tuning converts the config into the simulation constants.
func (c Config) Tuning() pet.Tuning {
	e := c.Engine
	t := pet.Tuning{
		BaseFrameworkProgress:       e.BaseFrameworkProgress,
		BaseEnergyIncrease:          e.BaseEnergyIncrease,
		BaseEnergyDecrease:          e.BaseEnergyDecrease,
		MaxEnergy:                   e.MaxEnergy,
		MaxQuality:                  e.MaxQuality,
		FrameworkCreationExp:        e.FrameworkCreationExp,
		ExperienceQualityMultiplier: e.ExperienceQualityMultiplier,
		DrinkAmount:                 e.DrinkAmount,
		QualityLogSize:              e.QualityLogSize,
		LevelBase:                   e.LevelBase,
		LevelExponent:               e.LevelExponent,
		Thresholds: pet.StateThresholds{
			ExhaustedBelow:   c.States.ExhaustedBelow,
			TiredBelow:       c.States.TiredBelow,
			HyperactiveAbove: c.States.HyperactiveAbove,
			LonelyAfter:      c.States.LonelyAfter,
		},
		Multipliers:     pet.DefaultMultipliers(),
		SocialPerPeer:   c.Social.PerPeer,
		SocialFloor:     c.Social.Floor,
		CryingAtOrBelow: c.Social.CryingAtOrBelow,
	}

	for name, m := range c.Multipliers {
		if st, err := pet.ParseAvatarState(name); err == nil {
			t.Multipliers[st] = m
		}
	}
	for _, step := range c.Social.Decay {
		t.SocialDecay = append(t.SocialDecay, pet.DecayStep{Before: step.Before, Multiplier: step.Multiplier})
	}
	return t
}

// Roller returns the quality roller the config asks for.
func (c Config) Roller(seed int64) pet.QualityRoller {
	if q := c.Engine.FixedQuality; q > 0 {
		return pet.RollerFunc(func(int) int { return q })
	}
	return pet.NewRandRoller(seed)
}
