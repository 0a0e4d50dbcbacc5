package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-survivors/internal/core"
	"github.com/vovakirdan/tui-survivors/internal/registry"
)

// Model is the Bubble Tea model that drives one game.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	sink      RunSink
	spectator FramePublisher
	config    core.RuntimeConfig
	input     *HeldInput
	keyMapper *KeyMapper
	gameState core.GameState
	tickGen   int64

	// allowBack lets b/esc on a paused or finished game leave to the menu.
	allowBack  bool
	backToMenu bool
	quitting   bool
	savedRun   string
}

// NewModel creates a new Bubble Tea model for the given game. sink may be nil.
func NewModel(game registry.Game, sink RunSink, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		sink:      sink,
		config:    cfg,
		input:     NewHeldInput(DefaultInitialHold, DefaultRepeatHold),
		keyMapper: NewKeyMapper(),
		tickGen:   nextTickGen(),
	}
}

// WithSpectator streams frames to p after every tick.
func (m Model) WithSpectator(p FramePublisher) Model {
	m.spectator = p
	return m
}

// WithBackToMenu enables leaving the game for a surrounding menu.
func (m Model) WithBackToMenu() Model {
	m.allowBack = true
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.tickGen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer follows the screen size; the run itself is unaffected.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if m.allowBack && action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, nil
	}

	m.input.Press(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	frame := m.input.Frame()

	// Restart with a fresh seed
	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.input.Reset()
		return m, tickCmd(m.config.TickRate, m.tickGen)
	}

	result := m.game.Step(frame)
	m.gameState = result.State
	m.input.Advance()

	if m.gameState.GameOver {
		m.recordRun()
	}
	if m.spectator != nil {
		if s, ok := m.game.(registry.Spectatable); ok {
			m.spectator.Publish(s.SpectatorFrame())
		}
	}

	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// recordRun hands a finished run to the sink exactly once.
func (m *Model) recordRun() {
	reporter, ok := m.game.(registry.RunReporter)
	if !ok || m.sink == nil {
		return
	}
	sum, ok := reporter.RunSummary()
	if !ok || sum.RunID == m.savedRun {
		return
	}
	m.savedRun = sum.RunID
	if err := m.sink.SaveRun(sum); err != nil {
		log.Warn("could not save run", "run", sum.RunID, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".survivors", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, sink RunSink, spectator FramePublisher, cfg core.RuntimeConfig) error {
	model := NewModel(game, sink, cfg)
	if spectator != nil {
		model = model.WithSpectator(spectator)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
