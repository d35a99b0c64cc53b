package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/magoocas/life-of-a-burrb/internal/storage"
)

// Records layout constants
const (
	minWidthForStats = 80  // Minimum width to show the lifetime stats panel
	statsPanelWidth  = 26  // Width of the lifetime stats panel
	maxRuns          = 100 // Max runs to load
)

// recordsMode selects which listing the table shows.
type recordsMode int

const (
	recordsTop recordsMode = iota
	recordsRecent
)

func (m recordsMode) String() string {
	if m == recordsTop {
		return "LONGEST RUNS"
	}
	return "RECENT RUNS"
}

// RecordsKeyMap defines the key bindings for the run records screen.
type RecordsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel is the Bubble Tea model for the run records screen.
type RecordsModel struct {
	store     *storage.Store
	mode      recordsMode
	runs      []storage.RunRecord
	lifetime  storage.LifetimeStats
	table     table.Model
	help      help.Model
	keys      RecordsKeyMap
	width     int
	height    int
	quitting  bool
	showStats bool // Whether to show the lifetime stats panel
}

// NewRecordsModel creates a new records model.
func NewRecordsModel(store *storage.Store, width, height int) RecordsModel {
	keys := DefaultRecordsKeyMap()
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		store:     store,
		mode:      recordsTop,
		keys:      keys,
		help:      h,
		width:     width,
		height:    height,
		showStats: width >= minWidthForStats,
	}

	m.table = m.createTable()
	m.loadRuns()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Survival", Width: 10},
		{Title: "Chips", Width: 7},
		{Title: "NPCs", Width: 6},
		{Title: "Abilities", Width: 9},
		{Title: "Date", Width: 14},
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	// Table styles
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

// loadRuns loads the listing for the current mode plus the lifetime stats.
func (m *RecordsModel) loadRuns() {
	if m.store == nil {
		m.runs = nil
		m.updateTableRows()
		return
	}

	var (
		runs []storage.RunRecord
		err  error
	)
	if m.mode == recordsTop {
		runs, err = m.store.TopRuns(maxRuns)
	} else {
		runs, err = m.store.RecentRuns(maxRuns)
	}
	if err != nil {
		m.runs = nil
	} else {
		m.runs = runs
	}

	if stats, err := m.store.Lifetime(); err == nil {
		m.lifetime = *stats
	}

	m.updateTableRows()
}

// updateTableRows updates the table with the current runs.
func (m *RecordsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			formatSurvival(r.SurvivalSecs),
			fmt.Sprintf("%d", r.Chips),
			fmt.Sprintf("%d", r.NPCsDefeated),
			fmt.Sprintf("%d/21", r.AbilitiesUnlocked),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// formatSurvival renders elapsed seconds as minutes and seconds.
func formatSurvival(secs float64) string {
	total := int(secs)
	if total < 60 {
		return fmt.Sprintf("%ds", total)
	}
	return fmt.Sprintf("%dm%02ds", total/60, total%60)
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.mode == recordsTop {
				m.mode = recordsRecent
			} else {
				m.mode = recordsTop
			}
			m.loadRuns()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showStats = m.width >= minWidthForStats
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText(m.mode.String(), m.width)))
	b.WriteString("\n\n")

	if m.showStats {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with the lifetime stats panel beside it.
func (m RecordsModel) renderWideLayout() string {
	statsStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(statsPanelWidth).
		Padding(0, 1)
	statsRendered := statsStyle.Render(m.renderStats())

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.renderTableContent())

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, statsRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the table with a one-line summary above it.
func (m RecordsModel) renderNarrowLayout() string {
	var b strings.Builder

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	summary := fmt.Sprintf("%d runs, best %s",
		m.lifetime.RunsCount, formatSurvival(m.lifetime.BestSurvivalSecs))
	b.WriteString(centerText(summaryStyle.Render(summary), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderStats renders the lifetime stats panel.
func (m RecordsModel) renderStats() string {
	var b strings.Builder
	b.WriteString("Lifetime\n")
	b.WriteString(strings.Repeat("-", statsPanelWidth-4))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Runs:      %d\n", m.lifetime.RunsCount))
	b.WriteString(fmt.Sprintf("Best:      %s\n", formatSurvival(m.lifetime.BestSurvivalSecs)))
	b.WriteString(fmt.Sprintf("Average:   %s\n", formatSurvival(m.lifetime.AvgSurvivalSecs)))
	b.WriteString(fmt.Sprintf("NPCs:      %d\n", m.lifetime.TotalNPCsDefeated))
	b.WriteString(fmt.Sprintf("Deaths:    %d\n", m.lifetime.TotalDeaths))
	if !m.lifetime.LastPlayed.IsZero() {
		b.WriteString(fmt.Sprintf("Last:      %s\n", m.lifetime.LastPlayed.Format("Jan 02")))
	}
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m RecordsModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nGo live a burrb life!")
	}

	return m.table.View()
}

// RunRecords runs the records screen and blocks until it is dismissed.
func RunRecords(store *storage.Store, width, height int) error {
	model := NewRecordsModel(store, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
