package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/jsgotchi/internal/storage"
)

// History layout constants
const (
	maxFrameworks = 100 // Max frameworks to load
	minTableRows  = 5
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Reload key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Reload, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Reload},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "h"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel lists the frameworks a pet has completed.
type HistoryModel struct {
	store      *storage.Store
	petID      string
	frameworks []storage.FrameworkRecord
	stats      *storage.PetStats
	err        error
	table      table.Model
	help       help.Model
	keys       HistoryKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewHistoryModel creates a history view and loads the latest frameworks.
func NewHistoryModel(store *storage.Store, petID string, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:  store,
		petID:  petID,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 8},
		{Title: "Quality", Width: 9},
		{Title: "Mood", Width: 12},
		{Title: "Level", Width: 6},
		{Title: "When", Width: 16},
	}

	rows := m.height - 10 // Leave room for header, stats, help, and margins
	if rows < minTableRows {
		rows = minTableRows
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads frameworks and stats from the store.
func (m *HistoryModel) load() {
	m.err = nil
	if m.store == nil {
		m.frameworks = nil
		m.stats = nil
		m.updateTableRows()
		return
	}

	frameworks, err := m.store.RecentFrameworks(m.petID, maxFrameworks)
	if err != nil {
		m.err = err
	}
	m.frameworks = frameworks

	stats, err := m.store.GetPetStats(m.petID)
	if err != nil && m.err == nil {
		m.err = err
	}
	m.stats = stats

	m.updateTableRows()
}

// updateTableRows updates the table with the loaded frameworks.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.frameworks))
	for i, f := range m.frameworks {
		rows[i] = table.Row{
			humanize.Comma(f.Number),
			QualityStars(f.Quality),
			f.State,
			fmt.Sprintf("%d", f.Level),
			humanize.Time(f.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// QualityStars draws a quality as filled and empty stars out of five.
func QualityStars(q int) string {
	if q < 0 {
		q = 0
	}
	if q > 5 {
		q = 5
	}
	return strings.Repeat("★", q) + strings.Repeat("☆", 5-q)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(centerText(titleStyle.Render("FRAMEWORK HISTORY"), m.width))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.Frameworks > 0 {
		line := fmt.Sprintf("%s shipped · average %.1f · best %d · level %d",
			humanize.Comma(int64(m.stats.Frameworks)), m.stats.AverageQuality, m.stats.BestQuality, m.stats.Level)
		b.WriteString(centerText(dimStyle.Render(line), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	}
	if len(m.frameworks) == 0 {
		return emptyStyle.Render("No frameworks shipped yet.\nKeep the pet company and it will get to work!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the pet.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}
