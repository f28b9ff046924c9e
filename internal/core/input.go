package core

import "sort"

// Action represents a semantic device input, abstracted from physical buttons
// and key presses. The platform maps GPIO edges or keys onto these.
type Action int

const (
	ActionNone         Action = iota
	ActionNextTab             // NEXT button - cycle the display tab
	ActionDrink               // ENERGY button - give an energy drink
	ActionProximityOn         // Proximity sensor went high
	ActionProximityOff        // Proximity sensor went low
	ActionQuit                // Q, Ctrl+C - exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionNextTab:
		return "NextTab"
	case ActionDrink:
		return "Drink"
	case ActionProximityOn:
		return "ProximityOn"
	case ActionProximityOff:
		return "ProximityOff"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the button actions triggered during one input poll.
// Repeated presses of the same button within a poll collapse into one,
// which doubles as debounce.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions != nil && f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// List returns the triggered actions in declaration order.
func (f InputFrame) List() []Action {
	out := make([]Action, 0, len(f.Actions))
	for a, on := range f.Actions {
		if on {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
