package pet

import "time"

// Snapshot captures the complete creature state for rendering, journaling
// and determinism tests.
type Snapshot struct {
	Tick uint64 `json:"tick"`

	AvatarState AvatarState `json:"avatar_state"`
	ActiveTab   int         `json:"active_tab"`

	Level                     int     `json:"level"`
	Experience                int     `json:"experience"`
	NextLevelExperience       int     `json:"next_level_experience"`
	StateExperienceMultiplier float64 `json:"state_experience_multiplier"`

	Framework                  int64   `json:"framework"`
	FrameworkQualityMultiplier float64 `json:"framework_quality_multiplier"`
	FrameworkSpeedMultiplier   float64 `json:"framework_speed_multiplier"`
	ActiveFrameworkProgress    int     `json:"active_framework_progress"`
	FrameworkCreationExp       int     `json:"framework_creation_exp"`
	LastFrameworkLevel         int     `json:"last_framework_level"`
	AverageQuality             int     `json:"average_quality"`

	LastProximity     time.Time     `json:"last_proximity"`
	IsProximityActive bool          `json:"is_proximity_active"`
	IdleFor           time.Duration `json:"idle_for"`

	Social           int       `json:"social"`
	LastSocial       time.Time `json:"last_social"`
	SocialMultiplier float64   `json:"social_multiplier"`
	IsCrying         bool      `json:"is_crying"`

	Energy             int       `json:"energy"`
	MaxEnergy          int       `json:"max_energy"`
	EnergyMultiplier   int       `json:"energy_multiplier"`
	EnergyIncrease     int       `json:"energy_increase"`
	LastEnergyIncrease time.Time `json:"last_energy_increase"`
}

// Exhausted reports whether the creature is in the exhausted state.
func (s Snapshot) Exhausted() bool {
	return s.AvatarState == StateExhausted
}

// ProgressRatio returns the active framework progress in [0, 1].
func (s Snapshot) ProgressRatio() float64 {
	if s.FrameworkCreationExp <= 0 {
		return 0
	}
	r := float64(s.ActiveFrameworkProgress) / float64(s.FrameworkCreationExp)
	if r > 1 {
		return 1
	}
	return r
}

func (g *Game) snapshot(now time.Time) Snapshot {
	return Snapshot{
		Tick: g.tick,

		AvatarState: g.avatarState,
		ActiveTab:   g.activeTab,

		Level:                     g.level,
		Experience:                g.experience,
		NextLevelExperience:       NextLevelExperience(g.level, g.tuning),
		StateExperienceMultiplier: g.stateExperienceMultiplier,

		Framework:                  g.framework,
		FrameworkQualityMultiplier: g.frameworkQualityMultiplier,
		FrameworkSpeedMultiplier:   g.frameworkSpeedMultiplier,
		ActiveFrameworkProgress:    g.activeFrameworkProgress,
		FrameworkCreationExp:       g.tuning.FrameworkCreationExp,
		LastFrameworkLevel:         g.lastFrameworkLevel,
		AverageQuality:             g.quality.Average(),

		LastProximity:     g.lastProximity,
		IsProximityActive: g.isProximityActive,
		IdleFor:           g.idleFor(now),

		Social:           g.social,
		LastSocial:       g.lastSocial,
		SocialMultiplier: g.socialMultiplier,
		IsCrying:         g.isCrying,

		Energy:             g.energy,
		MaxEnergy:          g.tuning.MaxEnergy,
		EnergyMultiplier:   g.energyMultiplier,
		EnergyIncrease:     g.energyIncrease,
		LastEnergyIncrease: g.lastEnergyIncrease,
	}
}
