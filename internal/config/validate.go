package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/jsgotchi/internal/pet"
)

// Validate reports every inconsistency in cfg at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	e := c.Engine
	check(e.TickInterval > 0, "engine.tick_interval must be positive")
	check(e.PollInterval > 0, "engine.poll_interval must be positive")
	check(e.MaxEnergy > 0, "engine.max_energy must be positive")
	check(e.MaxQuality > 0, "engine.max_quality must be positive")
	check(e.FrameworkCreationExp > 0, "engine.framework_creation_exp must be positive")
	check(e.QualityLogSize > 0, "engine.quality_log_size must be positive")
	check(e.BaseEnergyIncrease > 0, "engine.base_energy_increase must be positive")
	check(e.BaseEnergyDecrease >= 0, "engine.base_energy_decrease must not be negative")
	check(e.DrinkAmount > 0, "engine.drink_amount must be positive")
	check(e.LevelBase > 0, "engine.level_base must be positive")
	check(e.LevelExponent >= 0, "engine.level_exponent must not be negative")
	check(e.BaseFrameworkProgress >= 0, "engine.base_framework_progress must not be negative")
	check(e.ExperienceQualityMultiplier >= 0, "engine.experience_quality_multiplier must not be negative")
	check(e.FixedQuality >= 0 && e.FixedQuality <= e.MaxQuality,
		"engine.fixed_quality must be within 0..%d", e.MaxQuality)

	s := c.States
	check(s.ExhaustedBelow <= s.TiredBelow, "states: exhausted_below (%d) above tired_below (%d)", s.ExhaustedBelow, s.TiredBelow)
	check(s.TiredBelow <= s.HyperactiveAbove, "states: tired_below (%d) above hyperactive_above (%d)", s.TiredBelow, s.HyperactiveAbove)
	check(s.LonelyAfter > 0, "states.lonely_after must be positive")

	for name, m := range c.Multipliers {
		_, err := pet.ParseAvatarState(name)
		check(err == nil, "multipliers: unknown state %q", name)
		check(m.Quality >= 0 && m.Speed >= 0 && m.Experience >= 0,
			"multipliers.%s must not be negative", name)
	}

	for i, step := range c.Social.Decay {
		check(step.Before > 0, "social.decay[%d].before must be positive", i)
		if i > 0 {
			check(step.Before > c.Social.Decay[i-1].Before, "social.decay must be ascending at %d", i)
		}
	}
	check(c.Social.PerPeer > 0, "social.per_peer must be positive")

	check(c.Device.CryCooldown >= c.Device.CryDuration, "device.cry_cooldown shorter than cry_duration")
	check(c.Sound.Volume >= 0 && c.Sound.Volume <= 1, "sound.volume must be within 0..1")

	if c.Peer.Enabled {
		check(c.Peer.ScanWindow > 0, "peer.scan_window must be positive")
		check(c.Peer.Name != "", "peer.name must not be empty")
	}

	check(c.SSH.IdleTimeout >= 0, "ssh.idle_timeout must not be negative")

	return errors.Join(errs...)
}
