package pet

import "time"

// EventKind names something notable that happened to the creature.
type EventKind string

const (
	EventStateChanged       EventKind = "state_changed"
	EventFrameworkCompleted EventKind = "framework_completed"
	EventLevelUp            EventKind = "level_up"
	EventEnergyDrink        EventKind = "energy_drink"
	EventProximity          EventKind = "proximity"
	EventSocial             EventKind = "social"
	EventCrying             EventKind = "crying"
)

// Event is emitted by engine operations for journaling and storage.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind      EventKind   `json:"kind"`
	At        time.Time   `json:"at"`
	Tick      uint64      `json:"tick"`
	State     AvatarState `json:"state"`
	Previous  AvatarState `json:"previous"`
	Level     int         `json:"level,omitempty"`
	Quality   int         `json:"quality,omitempty"`
	Framework int64       `json:"framework,omitempty"`
	Energy    int         `json:"energy"`
	Pending   int         `json:"pending,omitempty"`
	Peers     int         `json:"peers,omitempty"`
	Active    bool        `json:"active,omitempty"`
}

// StepResult is returned by Engine.Advance after each simulation tick.
type StepResult struct {
	Tick   uint64
	Events []Event
}

// Has reports whether an event of kind occurred during the step.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
