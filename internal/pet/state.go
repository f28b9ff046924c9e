package pet

import (
	"fmt"
	"time"
)

// AvatarState is the creature's mood. It is always derived, never set.
type AvatarState int

const (
	StateResting AvatarState = iota
	StateTired
	StateExhausted
	StateHyperactive
	StateLonely
)

// AllStates lists every state in declaration order.
var AllStates = []AvatarState{StateResting, StateTired, StateExhausted, StateHyperactive, StateLonely}

// String returns the lowercase state name.
func (s AvatarState) String() string {
	switch s {
	case StateResting:
		return "resting"
	case StateTired:
		return "tired"
	case StateExhausted:
		return "exhausted"
	case StateHyperactive:
		return "hyperactive"
	case StateLonely:
		return "lonely"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s AvatarState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *AvatarState) UnmarshalText(b []byte) error {
	st, err := ParseAvatarState(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseAvatarState is the inverse of String.
func ParseAvatarState(name string) (AvatarState, error) {
	for _, st := range AllStates {
		if st.String() == name {
			return st, nil
		}
	}
	return StateResting, fmt.Errorf("pet: unknown avatar state %q", name)
}

// DeriveAvatarState classifies the creature; first matching rule wins.
func DeriveAvatarState(energy int, idle time.Duration, th StateThresholds) AvatarState {
	switch {
	case energy < th.ExhaustedBelow:
		return StateExhausted
	case energy < th.TiredBelow:
		return StateTired
	case energy > th.HyperactiveAbove:
		return StateHyperactive
	case idle > th.LonelyAfter:
		return StateLonely
	default:
		return StateResting
	}
}

// MultipliersFor returns the fixed default triple for a state.
func MultipliersFor(state AvatarState) Multipliers {
	switch state {
	case StateResting:
		return Multipliers{Quality: 1.25, Speed: 1.25, Experience: 3}
	case StateTired:
		return Multipliers{Quality: 0.5, Speed: 0.5, Experience: 1}
	case StateExhausted:
		return Multipliers{Quality: 0.25, Speed: 0.25, Experience: 0.5}
	case StateHyperactive:
		return Multipliers{Quality: 1.5, Speed: 1.5, Experience: 2}
	case StateLonely:
		return Multipliers{Quality: 0.75, Speed: 0.75, Experience: 0.75}
	default:
		return Multipliers{Quality: 1, Speed: 1, Experience: 1}
	}
}
