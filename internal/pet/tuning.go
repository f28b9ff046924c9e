package pet

import "time"

// Multipliers is the per-state triple applied to framework production
// and experience gain.
type Multipliers struct {
	Quality    float64 `yaml:"quality" json:"quality"`
	Speed      float64 `yaml:"speed" json:"speed"`
	Experience float64 `yaml:"experience" json:"experience"`
}

// StateThresholds are the cut-offs used by DeriveAvatarState.
type StateThresholds struct {
	ExhaustedBelow   int           // energy < this -> Exhausted
	TiredBelow       int           // energy < this -> Tired
	HyperactiveAbove int           // energy > this -> Hyperactive
	LonelyAfter      time.Duration // idle longer than this -> Lonely
}

// DecayStep is one row of the social decay table: while the time since the
// last social contact is below Before, the multiplier is Multiplier.
type DecayStep struct {
	Before     time.Duration
	Multiplier float64
}

// Tuning holds every constant of the simulation. The firmware revisions
// disagreed on several of these, so they are data rather than code.
type Tuning struct {
	BaseFrameworkProgress       int
	BaseEnergyIncrease          int
	BaseEnergyDecrease          int
	MaxEnergy                   int
	MaxQuality                  int
	FrameworkCreationExp        int
	ExperienceQualityMultiplier int
	DrinkAmount                 int
	QualityLogSize              int

	// Experience needed for the next level is LevelBase * level^LevelExponent.
	LevelBase     float64
	LevelExponent float64

	Thresholds  StateThresholds
	Multipliers map[AvatarState]Multipliers

	SocialPerPeer   float64     // multiplier per detected peer
	SocialDecay     []DecayStep // ascending by Before
	SocialFloor     float64     // multiplier once every step has elapsed
	CryingAtOrBelow float64     // isCrying when multiplier <= this
}

// DefaultMultipliers returns the firmware multiplier table.
func DefaultMultipliers() map[AvatarState]Multipliers {
	table := make(map[AvatarState]Multipliers, len(AllStates))
	for _, st := range AllStates {
		table[st] = MultipliersFor(st)
	}
	return table
}

// DefaultSocialDecay returns the one-minute stepped decay table.
func DefaultSocialDecay() []DecayStep {
	return []DecayStep{
		{Before: 60 * time.Second, Multiplier: 1.5},
		{Before: 120 * time.Second, Multiplier: 1.25},
		{Before: 180 * time.Second, Multiplier: 1.0},
		{Before: 240 * time.Second, Multiplier: 0.75},
		{Before: 300 * time.Second, Multiplier: 0.5},
	}
}

// DefaultTuning returns the canonical constants.
func DefaultTuning() Tuning {
	return Tuning{
		BaseFrameworkProgress:       10,
		BaseEnergyIncrease:          3,
		BaseEnergyDecrease:          1,
		MaxEnergy:                   1000,
		MaxQuality:                  5,
		FrameworkCreationExp:        500,
		ExperienceQualityMultiplier: 10,
		DrinkAmount:                 200,
		QualityLogSize:              20,
		LevelBase:                   100,
		LevelExponent:               1.5,
		Thresholds: StateThresholds{
			ExhaustedBelow:   50,
			TiredBelow:       300,
			HyperactiveAbove: 950,
			LonelyAfter:      10 * time.Minute,
		},
		Multipliers:     DefaultMultipliers(),
		SocialPerPeer:   1.5,
		SocialDecay:     DefaultSocialDecay(),
		SocialFloor:     0.25,
		CryingAtOrBelow: 0.5,
	}
}

// MultipliersFor returns the triple for state, falling back to the default
// table when the tuning does not list it.
func (t Tuning) MultipliersFor(state AvatarState) Multipliers {
	if m, ok := t.Multipliers[state]; ok {
		return m
	}
	return MultipliersFor(state)
}
