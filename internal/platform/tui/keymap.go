package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jsgotchi/internal/core"
)

// KeyMap defines the key bindings of the pet screen.
type KeyMap struct {
	Next      key.Binding
	Drink     key.Binding
	Proximity key.Binding
	History   key.Binding
	Big       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Drink, k.Proximity, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Drink, k.Proximity},
		{k.History, k.Big, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("n", "tab", "right"),
			key.WithHelp("n/tab", "next screen"),
		),
		Drink: key.NewBinding(
			key.WithKeys("e", " "),
			key.WithHelp("e", "energy drink"),
		),
		Proximity: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "stand close"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Big: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "zoom"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a device action.
// Returns the action (may be ActionNone) and whether it's a quit request.
// The proximity key toggles, so the current sensor level is needed to pick
// the edge.
func (k KeyMap) MapKey(msg tea.KeyMsg, sensor bool) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Next):
		return core.ActionNextTab, false
	case key.Matches(msg, k.Drink):
		return core.ActionDrink, false
	case key.Matches(msg, k.Proximity):
		if sensor {
			return core.ActionProximityOff, false
		}
		return core.ActionProximityOn, false
	}
	return core.ActionNone, false
}
