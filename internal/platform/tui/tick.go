// Package tui provides the Bubble Tea front end of the pet: a terminal
// rendition of the 16x2 display and LED, plus an SSH server that lets
// several people look at one shared pet.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jsgotchi/internal/pet"
)

// RefreshMsg asks the model to redraw from the device.
type RefreshMsg time.Time

// EventMsg carries a pet event to a visitor's screen.
type EventMsg pet.Event

// refreshCmd schedules the next redraw.
func refreshCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshMsg(t)
	})
}

// waitForEvent blocks until the next event arrives on ch.
// A nil or closed channel yields no message.
func waitForEvent(ch <-chan pet.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg(e)
	}
}
