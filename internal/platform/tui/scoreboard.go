package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/mining-tycoon/internal/storage"
)

// maxSessions is how many past sessions the history view loads.
const maxSessions = 50

// StatsKeyMap defines the key bindings for the history view.
type StatsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Back}}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "t", "q"),
			key.WithHelp("esc/t", "back"),
		),
	}
}

// StatsModel shows the recorded sessions of one save slot, best first.
type StatsModel struct {
	store    *storage.Store
	slot     string
	sessions []storage.SessionRecord
	summary  *storage.SlotStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	done     bool
}

// NewStatsModel loads the history of slot. A nil store shows an empty history.
func NewStatsModel(store *storage.Store, slot string, width, height int) StatsModel {
	m := StatsModel{
		store:  store,
		slot:   slot,
		help:   help.New(),
		keys:   DefaultStatsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the screen.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Peak", Width: 14},
		{Title: "Final", Width: 14},
		{Title: "Played", Width: 10},
		{Title: "Ach.", Width: 5},
		{Title: "Ended", Width: 14},
	}

	height := m.height - 10 // Leave room for header, summary and help
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// load reads sessions and the slot summary from the store.
func (m *StatsModel) load() {
	if m.store == nil {
		return
	}
	sessions, err := m.store.TopSessions(m.slot, maxSessions)
	if err != nil {
		m.loadErr = err
		return
	}
	summary, err := m.store.GetSlotStats(m.slot)
	if err != nil {
		m.loadErr = err
		return
	}
	m.sessions = sessions
	m.summary = summary
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded sessions.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			formatCoins(s.PeakCoins),
			formatCoins(s.FinalCoins),
			formatElapsed(s.Elapsed.Seconds()),
			fmt.Sprintf("%d", s.Achievements),
			humanize.Time(s.EndedAt),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Resize adapts the table to a new screen size.
func (m StatsModel) Resize(width, height int) StatsModel {
	m.width = width
	m.height = height
	m.help.Width = width
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// Update handles key input for the history view.
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, m.keys.Back) {
		m.done = true
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// Done reports whether the user closed the view.
func (m StatsModel) Done() bool {
	return m.done
}

// View renders the history view.
func (m StatsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("SESSION HISTORY - "+m.slot, m.width)))
	b.WriteString("\n\n")

	if m.summary != nil && m.summary.Sessions > 0 {
		b.WriteString(labelStyle.Render("Sessions "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%d", m.summary.Sessions)))
		b.WriteString(labelStyle.Render("   Best "))
		b.WriteString(valueStyle.Render(formatCoins(m.summary.BestPeak)))
		b.WriteString(labelStyle.Render("   Total play "))
		b.WriteString(valueStyle.Render(m.summary.TotalElapsed.Round(time.Second).String()))
		b.WriteString("\n\n")
	}

	b.WriteString(panelStyle.Render(m.renderTableContent()))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m StatsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return emptyStyle.Render("Session history is not available.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load history: " + m.loadErr.Error())
	case len(m.sessions) == 0:
		return emptyStyle.Render("No sessions recorded yet.\nQuit a game to record one!")
	}
	return m.table.View()
}
