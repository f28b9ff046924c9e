package pet

import (
	"time"

	"github.com/vovakirdan/jsgotchi/internal/core"
)

// SocialMultiplierAfter looks up the decay table for the time elapsed since
// the last social contact, at whole-second resolution.
func SocialMultiplierAfter(elapsed time.Duration, t Tuning) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	elapsed = elapsed.Truncate(time.Second)
	for _, step := range t.SocialDecay {
		if elapsed < step.Before {
			return step.Multiplier
		}
	}
	return t.SocialFloor
}

// setProximity latches the sensor level. The rising edge stamps
// lastProximity; the falling edge is kept separately for idleFor.
func (g *Game) setProximity(active bool, now time.Time) []Event {
	if active == g.isProximityActive {
		return nil
	}
	g.isProximityActive = active
	if active {
		g.lastProximity = now
	} else {
		g.proximityEndedAt = now
	}
	ev := g.event(EventProximity, now)
	ev.Active = active
	return []Event{ev}
}

// setSocial records detected peers. Non-positive counts are ignored.
func (g *Game) setSocial(peers int, now time.Time) []Event {
	if peers <= 0 {
		return nil
	}
	g.lastSocial = now
	g.social = peers
	g.updateSocialMultiplier(now)

	ev := g.event(EventSocial, now)
	ev.Peers = peers
	return []Event{ev}
}

// forgetPeers drops the current peer count without touching lastSocial,
// so the decay table takes over from the last contact.
func (g *Game) forgetPeers(now time.Time) {
	if g.social == 0 {
		return
	}
	g.social = 0
	g.updateSocialMultiplier(now)
}

// updateSocialMultiplier recomputes the multiplier and the crying flag.
func (g *Game) updateSocialMultiplier(now time.Time) {
	if g.social > 0 {
		g.socialMultiplier = g.tuning.SocialPerPeer * float64(g.social)
	} else {
		g.socialMultiplier = SocialMultiplierAfter(now.Sub(g.lastSocial), g.tuning)
	}
	g.isCrying = g.socialMultiplier <= g.tuning.CryingAtOrBelow
}

// drinkEnergy stacks an energy drink onto the pending pool.
func (g *Game) drinkEnergy(now time.Time) []Event {
	g.energyMultiplier++
	g.lastEnergyIncrease = now
	g.energyIncrease = core.Min(g.energyIncrease+g.tuning.DrinkAmount, g.tuning.MaxEnergy)

	ev := g.event(EventEnergyDrink, now)
	ev.Pending = g.energyIncrease
	return []Event{ev}
}
