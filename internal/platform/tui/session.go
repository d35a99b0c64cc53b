package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/magoocas/life-of-a-burrb/internal/core"
	"github.com/magoocas/life-of-a-burrb/internal/sim"
	"github.com/magoocas/life-of-a-burrb/internal/spectator"
	"github.com/magoocas/life-of-a-burrb/internal/storage"
)

// SessionModel is the Bubble Tea model for one burrb session. It owns the
// simulation, feeds it one intent per tick, and overlays the ability shop
// on demand. While the shop is open the simulation does not step.
type SessionModel struct {
	game   *sim.Game
	screen *core.Screen
	store  *storage.Store // nil disables run records
	hub    *spectator.Hub // nil disables broadcasting
	source string         // session name in broadcast frames
	keys   *KeyMapper
	config core.RuntimeConfig

	dt           float64
	publishEvery int // ticks between snapshot publishes
	tick         int

	state    sim.GameState
	shop     ShopModel
	shopOpen bool
	quitting bool
	runSaved bool
}

// NewSessionModel creates a session model. A zero seed is replaced with the
// current time so every run gets a fresh town.
func NewSessionModel(store *storage.Store, hub *spectator.Hub, source string, cfg core.RuntimeConfig) SessionModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	// The hub throttles on its own; publishing every tick would only waste
	// snapshot allocations, so aim for ten offers a second.
	publishEvery := cfg.TickRate / 10
	if publishEvery < 1 {
		publishEvery = 1
	}

	return SessionModel{
		game:         sim.New(),
		screen:       core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:        store,
		hub:          hub,
		source:       source,
		keys:         NewKeyMapper(cfg.TickRate),
		config:       cfg,
		dt:           1.0 / float64(cfg.TickRate),
		publishEvery: publishEvery,
	}
}

// Init initializes the model and starts the session.
func (m SessionModel) Init() tea.Cmd {
	// Reset mutates through the pointer, so the value receiver is fine here
	m.game.Reset(m.config)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m SessionModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.shopOpen {
		var cmd tea.Cmd
		m.shop, cmd = m.shop.Update(msg)
		if m.shop.Closing() {
			m.shopOpen = false
		}
		return m, cmd
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.HandleKey(msg)
	if isQuit {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}
	if action == core.ActionShop {
		// Drop held movement so closing the shop does not resume a stale walk
		m.keys.Release()
		m.shop = NewShopModel(m.game, m.config.ScreenW, m.config.ScreenH)
		m.shopOpen = true
	}

	return m, nil
}

// handleResize processes window resize events. The camera follows the
// player, so the session survives a resize without restarting.
func (m SessionModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.shopOpen {
		var cmd tea.Cmd
		m.shop, cmd = m.shop.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleTick processes simulation ticks. The tick loop keeps running while
// the shop is open so play resumes the instant it closes, but the
// simulation itself stays frozen.
func (m SessionModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.shopOpen {
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.keys.Intent(), m.dt)
	m.state = result.State
	m.tick++

	if m.hub != nil && m.tick%m.publishEvery == 0 {
		m.hub.Publish(m.source, m.game.Snapshot())
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRun records the session once. Quitting twice or quitting without a
// store is harmless.
func (m *SessionModel) saveRun() {
	if m.store == nil || m.runSaved {
		return
	}
	st := m.game.State()
	rec := storage.RunRecord{
		Seed:              m.game.Seed(),
		SurvivalSecs:      st.Seconds,
		Chips:             st.Wallet[sim.CurrencyChips],
		Berries:           st.Wallet[sim.CurrencyBerries],
		Gems:              st.Wallet[sim.CurrencyGems],
		Snowflakes:        st.Wallet[sim.CurrencySnowflakes],
		Mushrooms:         st.Wallet[sim.CurrencyMushrooms],
		NPCsDefeated:      st.NPCsDefeated,
		Deaths:            st.Deaths,
		AbilitiesUnlocked: st.AbilitiesUnlocked,
	}
	//nolint:errcheck // Best-effort save, quitting continues regardless
	m.store.SaveRun(rec)
	m.runSaved = true
}

// saveScreenshot saves the current screen to a file.
func (m *SessionModel) saveScreenshot() {
	// Render current state
	m.game.Render(m.screen)

	// Create screenshots directory
	dir := filepath.Join(os.Getenv("HOME"), ".burrb", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("burrb_%s.txt", timestamp)
	path := filepath.Join(dir, filename)

	// Save screenshot
	//nolint:errcheck // Best-effort save, session continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.shopOpen {
		return m.shop.View()
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	// Convert screen to string
	return RenderScreen(m.screen)
}

// Run starts a local session and blocks until it ends. The run record is
// saved on the way out even when the program is interrupted rather than
// quit by key.
func Run(store *storage.Store, hub *spectator.Hub, cfg core.RuntimeConfig) error {
	model := NewSessionModel(store, hub, "local", cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if sm, ok := finalModel.(SessionModel); ok {
		sm.saveRun()
	}
	return err
}
