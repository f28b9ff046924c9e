package pet

import (
	"sync"
	"time"
)

// Engine owns a Game and serializes every read and write through one mutex.
// The tick loop, the input loop and peer discovery may call it concurrently.
type Engine struct {
	mu   sync.Mutex
	game *Game
}

// NewEngine creates a creature at the start of its life.
// A nil roller uses a RandRoller seeded from now.
func NewEngine(t Tuning, now time.Time, roller QualityRoller) *Engine {
	if roller == nil {
		roller = NewRandRoller(now.UnixNano())
	}
	return &Engine{game: newGame(t, now, roller)}
}

// Advance runs one simulation step: state and multipliers, energy, then
// framework progress.
func (e *Engine) Advance(now time.Time) StepResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.advance(now)
}

// SetProximity latches the proximity sensor level.
func (e *Engine) SetProximity(active bool, now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.setProximity(active, now)
}

// SetSocial records the number of peers currently detected.
// Counts <= 0 are a no-op.
func (e *Engine) SetSocial(peers int, now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.setSocial(peers, now)
}

// ForgetPeers clears the peer count so the social multiplier starts decaying.
func (e *Engine) ForgetPeers(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.game.forgetPeers(now)
}

// DrinkEnergy gives the creature an energy drink.
func (e *Engine) DrinkEnergy(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.drinkEnergy(now)
}

// NextTab cycles the active display tab and returns the new one.
func (e *Engine) NextTab() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.game.nextTab()
	return e.game.activeTab
}

// Snapshot returns a consistent read-only copy of the state.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.snapshot(now)
}

// Tuning returns the constants the engine runs with.
func (e *Engine) Tuning() Tuning {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.game.tuning
}
