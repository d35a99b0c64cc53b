package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/magoocas/life-of-a-burrb/internal/sim"
)

// Shop layout constants
const (
	minWidthForDetail = 80 // Minimum width to show the ability detail pane
	detailWidth       = 32 // Width of the detail pane
)

// ShopKeyMap defines the key bindings for the ability shop overlay.
type ShopKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	PrevTab key.Binding
	NextTab key.Binding
	Buy     key.Binding
	Close   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevTab, k.NextTab, k.Buy, k.Close}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevTab, k.NextTab},
		{k.Buy, k.Close},
	}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev currency"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next currency"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "buy"),
		),
		Close: key.NewBinding(
			key.WithKeys("tab", "esc"),
			key.WithHelp("tab/esc", "close shop"),
		),
	}
}

// ShopModel is the Bubble Tea model for the ability shop overlay. It reads
// the wallet and catalog from the live session and issues purchases against
// it; the session keeps the simulation paused while the overlay is up.
type ShopModel struct {
	game       *sim.Game
	tab        sim.Currency
	ids        []sim.AbilityID
	table      table.Model
	help       help.Model
	keys       ShopKeyMap
	width      int
	height     int
	status     string // outcome of the last purchase attempt
	closing    bool
	showDetail bool
}

// NewShopModel creates a shop overlay bound to a session. The chip tab is
// selected first.
func NewShopModel(game *sim.Game, width, height int) ShopModel {
	keys := DefaultShopKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ShopModel{
		game:       game,
		tab:        sim.CurrencyChips,
		keys:       keys,
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}

	m.table = m.createTable()
	m.loadTab(m.tab)

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ShopModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Key", Width: 5},
		{Title: "Ability", Width: 14},
		{Title: "Cost", Width: 14},
		{Title: "Status", Width: 10},
	}

	height := m.height - 10 // Leave room for title, wallet, help, and margins
	if height < 3 {
		height = 3
	}
	// The chip tab has nine entries; keep the table compact on tall terminals
	if height > 12 {
		height = 12
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

// loadTab switches to the given currency tab and rebuilds the listing.
func (m *ShopModel) loadTab(c sim.Currency) {
	m.tab = c
	m.ids = sim.ShopTab(c)
	m.updateTableRows()
}

// updateTableRows updates the table with the current tab's catalog entries.
func (m *ShopModel) updateTableRows() {
	rows := make([]table.Row, len(m.ids))
	for i, id := range m.ids {
		def := sim.Def(id)

		status := "locked"
		if m.game.Unlocked(id) {
			status = "owned"
		} else if m.game.Affordable(id) {
			status = "buy!"
		}

		rows[i] = table.Row{
			def.Key,
			def.Name,
			fmt.Sprintf("%d %s", def.Cost, def.Currency),
			status,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop overlay.
func (m ShopModel) Update(msg tea.Msg) (ShopModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Close):
			m.closing = true
			return m, nil

		case key.Matches(msg, m.keys.NextTab):
			next := (m.tab + 1) % sim.Currency(sim.CurrencyCount)
			m.loadTab(next)
			m.status = ""
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			prev := m.tab - 1
			if prev < 0 {
				prev = sim.Currency(sim.CurrencyCount - 1)
			}
			m.loadTab(prev)
			m.status = ""
			return m, nil

		case key.Matches(msg, m.keys.Buy):
			m.buySelected()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// buySelected attempts to purchase the highlighted ability.
func (m *ShopModel) buySelected() {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.ids) {
		return
	}
	id := m.ids[cursor]
	def := sim.Def(id)

	result := m.game.Purchase(id)
	m.status = fmt.Sprintf("%s: %s", def.Name, result)

	// Refresh statuses without losing the cursor position
	m.updateTableRows()
	m.table.SetCursor(cursor)
}

// Closing reports whether the user asked to leave the shop. The session
// resets it when it takes the overlay down.
func (m ShopModel) Closing() bool {
	return m.closing
}

// View renders the shop overlay.
func (m ShopModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("ABILITY SHOP - %s", strings.ToUpper(m.tab.String()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderWallet(), m.width))
	b.WriteString("\n\n")

	if m.showDetail {
		b.WriteString(m.renderWideLayout())
	} else {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	}

	b.WriteString("\n")
	if m.status != "" {
		statusStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))
		b.WriteString(centerText(statusStyle.Render(m.status), m.width))
	}
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWallet renders all five balances with the active tab highlighted.
func (m ShopModel) renderWallet() string {
	wallet := m.game.State().Wallet

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	parts := make([]string, sim.CurrencyCount)
	for c := sim.Currency(0); c < sim.Currency(sim.CurrencyCount); c++ {
		entry := fmt.Sprintf("%s: %d", c, wallet[c])
		if c == m.tab {
			parts[c] = activeStyle.Render(entry)
		} else {
			parts[c] = dimStyle.Render(entry)
		}
	}
	return strings.Join(parts, "   ")
}

// renderWideLayout renders the listing with an ability detail pane.
func (m ShopModel) renderWideLayout() string {
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	tableRendered := tableStyle.Render(m.table.View())

	detailStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(detailWidth).
		Padding(0, 1)
	detailRendered := detailStyle.Render(m.renderDetail())

	joined := lipgloss.JoinHorizontal(lipgloss.Top, tableRendered, "  ", detailRendered)
	return centerText(joined, m.width)
}

// renderDetail renders the highlighted ability's blurb and clocks.
func (m ShopModel) renderDetail() string {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.ids) {
		return "No abilities in this tab."
	}
	def := sim.Def(m.ids[cursor])

	var b strings.Builder
	nameStyle := lipgloss.NewStyle().Bold(true)
	b.WriteString(nameStyle.Render(def.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s / %s\n\n", def.Category, def.Kind))
	b.WriteString(def.Blurb)
	b.WriteString("\n\n")

	if def.Duration > 0 {
		b.WriteString(fmt.Sprintf("Duration: %.0fs\n", def.Duration))
	}
	if def.Cooldown > 0 {
		b.WriteString(fmt.Sprintf("Cooldown: %.0fs\n", def.Cooldown))
	}
	if def.OutdoorOnly {
		b.WriteString("Outdoors only\n")
	}
	return b.String()
}
