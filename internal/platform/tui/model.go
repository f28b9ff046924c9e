package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/jsgotchi/internal/core"
	"github.com/vovakirdan/jsgotchi/internal/device"
	"github.com/vovakirdan/jsgotchi/internal/lcd"
	"github.com/vovakirdan/jsgotchi/internal/pet"
	"github.com/vovakirdan/jsgotchi/internal/storage"
)

// noticeTTL is how long an event message stays on screen.
const noticeTTL = 5 * time.Second

// Options configures a pet screen.
type Options struct {
	Name     string
	PetID    string
	Store    *storage.Store   // nil disables the history view
	Events   <-chan pet.Event // nil means no event messages
	Sensor   bool             // allow the proximity key
	Refresh  time.Duration    // redraw period, defaults to 100ms
	Visitors func() int       // optional visitor counter
}

// Model is the Bubble Tea model showing one device.
type Model struct {
	dev     *device.Device
	panel   *lcd.Panel
	opts    Options
	keys    KeyMap
	help    help.Model
	history *HistoryModel

	sensor   bool
	big      bool
	notice   string
	noticeAt time.Time
	now      time.Time
	width    int
	height   int
	quitting bool
}

// NewModel creates a pet screen for dev, which must draw onto panel.
func NewModel(dev *device.Device, panel *lcd.Panel, opts Options) Model {
	if opts.Refresh <= 0 {
		opts.Refresh = 100 * time.Millisecond
	}
	if opts.Name == "" {
		opts.Name = "JSgotchi"
	}
	h := help.New()
	h.ShowAll = false

	return Model{
		dev:   dev,
		panel: panel,
		opts:  opts,
		keys:  DefaultKeyMap(),
		help:  h,
		now:   time.Now(),
	}
}

// Init starts the redraw loop and the event listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(refreshCmd(m.opts.Refresh), waitForEvent(m.opts.Events))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.history != nil {
			return m.updateHistory(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.history != nil {
			h, _ := m.history.Update(msg)
			hm := h.(HistoryModel)
			m.history = &hm
		}
		return m, nil

	case RefreshMsg:
		m.now = time.Time(msg)
		return m, refreshCmd(m.opts.Refresh)

	case EventMsg:
		m.notice = Describe(pet.Event(msg))
		m.noticeAt = m.now
		return m, waitForEvent(m.opts.Events)
	}

	return m, nil
}

// handleKey processes keyboard input on the pet screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Big):
		m.big = !m.big
		return m, nil
	case key.Matches(msg, m.keys.History):
		if m.opts.Store != nil {
			h := NewHistoryModel(m.opts.Store, m.opts.PetID, m.width, m.height)
			m.history = &h
		}
		return m, nil
	}

	action, quit := m.keys.MapKey(msg, m.sensor)
	if quit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionProximityOn, core.ActionProximityOff:
		if !m.opts.Sensor {
			return m, nil
		}
		m.sensor = action == core.ActionProximityOn
	}
	m.dev.Press(action)
	return m, nil
}

// updateHistory forwards keys to the history view until it is closed.
func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	h, cmd := m.history.Update(msg)
	hm := h.(HistoryModel)
	switch {
	case hm.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case hm.IsGoingBack():
		m.history = nil
		return m, nil
	}
	m.history = &hm
	return m, cmd
}

// Sensor reports the proximity level set from the keyboard.
func (m Model) Sensor() bool {
	return m.sensor
}

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.history != nil {
		return m.history.View()
	}

	frame := m.panel.Snapshot()
	snap := m.dev.Snapshot()

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render(m.opts.Name), m.width))
	b.WriteString("\n")

	screen := RenderLCD(frame)
	if m.big {
		screen = lipgloss.JoinHorizontal(lipgloss.Center, screen, "  ", RenderGlyph(AvatarGlyph(frame)))
	}
	b.WriteString(centerText(screen, m.width))
	b.WriteString("\n")
	b.WriteString(centerText(RenderLED(m.dev.LightOn())+"   "+m.statusLine(snap), m.width))
	b.WriteString("\n\n")

	if m.notice != "" && m.now.Sub(m.noticeAt) < noticeTTL {
		b.WriteString(centerText(noticeStyle.Render(m.notice), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) statusLine(s pet.Snapshot) string {
	parts := []string{
		s.AvatarState.String(),
		fmt.Sprintf("lvl %d", s.Level),
		fmt.Sprintf("%s frameworks", humanize.Comma(s.Framework)),
	}
	if s.Social > 0 {
		parts = append(parts, fmt.Sprintf("%d friends", s.Social))
	}
	if m.opts.Visitors != nil {
		parts = append(parts, fmt.Sprintf("%d watching", m.opts.Visitors()))
	}
	if m.sensor {
		parts = append(parts, "you are close")
	}
	return dimStyle.Render(strings.Join(parts, " · "))
}

// Describe turns an event into a one-line message.
func Describe(e pet.Event) string {
	switch e.Kind {
	case pet.EventFrameworkCompleted:
		return fmt.Sprintf("framework #%d shipped, quality %d", e.Framework, e.Quality)
	case pet.EventLevelUp:
		return fmt.Sprintf("level up! now level %d", e.Level)
	case pet.EventStateChanged:
		return fmt.Sprintf("feeling %s", e.State)
	case pet.EventEnergyDrink:
		return fmt.Sprintf("gulp! %d energy on the way", e.Pending)
	case pet.EventProximity:
		if e.Active {
			return "someone came close"
		}
		return "the visitor left"
	case pet.EventSocial:
		return fmt.Sprintf("%d friends nearby", e.Peers)
	case pet.EventCrying:
		return "crying for company"
	default:
		return string(e.Kind)
	}
}

// Run starts the Bubble Tea program for a local pet.
func Run(dev *device.Device, panel *lcd.Panel, opts Options) error {
	p := tea.NewProgram(
		NewModel(dev, panel, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
