// Package pet implements the creature simulation: avatar state derivation,
// energy and framework progression, experience and levels, and the social
// and proximity tracker. It performs no I/O and reads no global clock;
// every time-dependent operation receives `now` from the caller.
package pet

import (
	"math"
	"time"

	"github.com/vovakirdan/jsgotchi/internal/core"
)

// TabCount is the number of display tabs cycled by NextTab.
const TabCount = 3

// Game is the creature's state. It is owned by an Engine and only mutated
// through the Engine's methods.
type Game struct {
	tuning  Tuning
	roller  QualityRoller
	quality *QualityLog
	tick    uint64

	avatarState AvatarState
	activeTab   int

	level                     int
	experience                int
	stateExperienceMultiplier float64

	framework                  int64
	frameworkQualityMultiplier float64
	frameworkSpeedMultiplier   float64
	activeFrameworkProgress    int
	lastFrameworkLevel         int

	lastProximity     time.Time // last rising edge
	proximityEndedAt  time.Time // last falling edge
	isProximityActive bool

	social           int
	lastSocial       time.Time
	socialMultiplier float64
	isCrying         bool

	energy             int
	energyMultiplier   int
	energyIncrease     int
	lastEnergyIncrease time.Time
}

// newGame returns the start-of-life state, stamped with now.
func newGame(t Tuning, now time.Time, roller QualityRoller) *Game {
	return &Game{
		tuning:  t,
		roller:  roller,
		quality: NewQualityLog(t.QualityLogSize),

		avatarState: StateResting,
		activeTab:   1,

		level:                     1,
		stateExperienceMultiplier: 1.0,

		frameworkQualityMultiplier: 1.0,
		frameworkSpeedMultiplier:   1.0,
		lastFrameworkLevel:         -1,

		lastProximity: now,

		lastSocial:       now,
		socialMultiplier: 1.0,

		energy:             t.MaxEnergy,
		energyMultiplier:   1,
		lastEnergyIncrease: now,
	}
}

// idleFor is the time without anyone nearby. An active sensor means no idling;
// otherwise idle time runs from whichever proximity edge came last, so a long
// visit does not leave the pet lonely the moment the visitor walks away.
func (g *Game) idleFor(now time.Time) time.Duration {
	if g.isProximityActive {
		return 0
	}
	since := g.lastProximity
	if g.proximityEndedAt.After(since) {
		since = g.proximityEndedAt
	}
	idle := now.Sub(since)
	if idle < 0 {
		return 0
	}
	return idle
}

// refreshState derives the avatar state and loads its multipliers.
func (g *Game) refreshState(now time.Time) {
	g.avatarState = DeriveAvatarState(g.energy, g.idleFor(now), g.tuning.Thresholds)
	m := g.tuning.MultipliersFor(g.avatarState)
	g.frameworkQualityMultiplier = m.Quality
	g.frameworkSpeedMultiplier = m.Speed
	g.stateExperienceMultiplier = m.Experience
}

// advance runs one simulation step.
func (g *Game) advance(now time.Time) StepResult {
	g.tick++
	res := StepResult{Tick: g.tick}

	prev := g.avatarState
	wasCrying := g.isCrying
	g.refreshState(now)
	g.updateSocialMultiplier(now)

	if g.avatarState != prev {
		ev := g.event(EventStateChanged, now)
		ev.Previous = prev
		res.Events = append(res.Events, ev)
	}
	if g.isCrying && !wasCrying {
		res.Events = append(res.Events, g.event(EventCrying, now))
	}

	g.progressEnergy()
	res.Events = append(res.Events, g.progressFramework(now)...)
	return res
}

// progressEnergy applies a pending drink or drains one step.
func (g *Game) progressEnergy() {
	t := g.tuning
	if g.energyIncrease > 0 {
		applied := core.Min(t.BaseEnergyIncrease*g.energyMultiplier, g.energyIncrease)
		g.energyIncrease -= applied
		g.energy = core.Clamp(g.energy+applied, 0, t.MaxEnergy)
		if g.energyIncrease == 0 {
			g.energyMultiplier = 1
		}
		return
	}
	if g.energy > 0 && g.energy <= t.MaxEnergy {
		g.energy = core.Clamp(g.energy-t.BaseEnergyDecrease, 0, t.MaxEnergy)
	}
}

// progressStep is the framework progress earned in one tick.
func (g *Game) progressStep() int {
	return int(math.Floor(float64(g.tuning.BaseFrameworkProgress)*g.frameworkSpeedMultiplier + float64(g.level)))
}

// progressFramework accumulates progress and completes a framework when due.
func (g *Game) progressFramework(now time.Time) []Event {
	g.activeFrameworkProgress += g.progressStep()
	if g.activeFrameworkProgress < g.tuning.FrameworkCreationExp {
		return nil
	}
	return g.completeFramework(now)
}

// completeFramework rolls a quality, records it and grants experience.
func (g *Game) completeFramework(now time.Time) []Event {
	t := g.tuning
	g.framework++
	g.activeFrameworkProgress = 0

	roll := core.Clamp(g.roller.Roll(t.MaxQuality), 1, t.MaxQuality)
	quality := int(math.Round(float64(roll) * g.frameworkQualityMultiplier))
	quality = core.Clamp(quality, 1, t.MaxQuality)

	g.quality.Push(quality)
	g.lastFrameworkLevel = quality

	ev := g.event(EventFrameworkCompleted, now)
	ev.Quality = quality
	events := []Event{ev}

	if g.addExperience(quality) {
		events = append(events, g.event(EventLevelUp, now))
	}
	return events
}

// addExperience converts a framework quality into experience.
func (g *Game) addExperience(quality int) bool {
	points := float64(quality*g.tuning.ExperienceQualityMultiplier) * g.stateExperienceMultiplier
	return g.grantExperience(points)
}

// grantExperience adds points and levels up at most once.
func (g *Game) grantExperience(points float64) bool {
	g.experience = int(float64(g.experience) + points)
	if g.experience < NextLevelExperience(g.level, g.tuning) {
		return false
	}
	g.level++
	g.experience = 0
	return true
}

// NextLevelExperience is the experience required to leave level.
func NextLevelExperience(level int, t Tuning) int {
	return int(t.LevelBase * math.Pow(float64(level), t.LevelExponent))
}

// nextTab cycles the display tab.
func (g *Game) nextTab() {
	g.activeTab = (g.activeTab + 1) % TabCount
}

// event builds an event stamped with the current state.
func (g *Game) event(kind EventKind, now time.Time) Event {
	return Event{
		Kind:      kind,
		At:        now,
		Tick:      g.tick,
		State:     g.avatarState,
		Level:     g.level,
		Framework: g.framework,
		Energy:    g.energy,
	}
}
