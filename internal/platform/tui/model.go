package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/storage"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

// helpRows is the height of the footer below the playfield.
const helpRows = 1

// GameOptions configures a game Model. Engine is required and must already
// be initialized.
type GameOptions struct {
	Engine   *game.Engine
	Scores   *storage.Store      // Score history; nil disables saving rounds
	Recorder *telemetry.Recorder // Per-round CSV; nil disables recording
	Mode     string              // Difficulty preset, used to key score history
	FPS      int                 // Display frames per second
	Width    int                 // Initial terminal size
	Height   int
	Logger   *log.Logger

	// ScreenshotDir receives ctrl+s dumps. Defaults to ~/.flappy/screenshots.
	ScreenshotDir string

	// Embedded models never quit the program on Back; the parent switches
	// screens instead.
	Embedded bool
}

// Model is the Bubble Tea model that hosts one engine. It delivers display
// frames only while the engine asks for them.
type Model struct {
	engine   *game.Engine
	screen   *core.Screen
	surface  *ScaledSurface
	scores   *storage.Store
	recorder *telemetry.Recorder
	frames   *telemetry.FrameCollector
	keys     *KeyMapper
	help     help.Model
	logger   *log.Logger

	mode          string
	fps           int
	screenshotDir string
	embedded      bool

	origin    time.Time // Timestamp of the first display frame
	ticking   bool      // A TickMsg is in flight
	lastState game.State
	rounds    int
	status    string

	quitting   bool
	backToMenu bool
}

// NewModel creates a Bubble Tea model for the given engine.
func NewModel(opts GameOptions) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		defaults := core.DefaultConfig()
		width, height = defaults.ScreenW, defaults.ScreenH
	}

	screen := core.NewScreen(width, max(height-helpRows, 1))
	cw, ch := opts.Engine.Canvas()

	h := help.New()
	h.Width = width

	m := Model{
		engine:        opts.Engine,
		screen:        screen,
		surface:       NewScaledSurface(screen, cw, ch),
		scores:        opts.Scores,
		recorder:      opts.Recorder,
		frames:        telemetry.NewFrameCollector(fps),
		keys:          NewKeyMapper(),
		help:          h,
		logger:        logger,
		mode:          opts.Mode,
		fps:           fps,
		screenshotDir: opts.ScreenshotDir,
		embedded:      opts.Embedded,
		lastState:     opts.Engine.State(),
	}
	m.fitCanvas()
	return m
}

// Init implements tea.Model. Nothing ticks until a round starts.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.BlurMsg:
		if m.engine.State() == game.StateRunning {
			m.engine.Pause()
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.engine.State()

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		m.engine.Teardown()
		return m, tea.Quit

	case core.ActionScreenshot:
		m.saveScreenshot()

	case core.ActionFlap:
		if state == game.StateIdle || state == game.StateGameOver {
			return m.startRound()
		}
		m.engine.OnInput()

	case core.ActionRestart:
		if state == game.StateGameOver {
			return m.startRound()
		}

	case core.ActionPause:
		m.engine.OnPauseToggle()

	case core.ActionBack:
		if state == game.StateRunning {
			return m, nil
		}
		m.backToMenu = true
		m.engine.Teardown()
		if !m.embedded {
			return m, tea.Quit
		}
	}

	return m, nil
}

// startRound begins a round and restarts the frame chain if it stopped.
func (m Model) startRound() (tea.Model, tea.Cmd) {
	m.engine.Start()
	m.frames.Reset()
	m.status = ""
	m.lastState = m.engine.State()

	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, tickCmd(m.fps)
}

// handleTick feeds one display frame to the engine.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.origin.IsZero() {
		m.origin = now
	}
	nowMs := float64(now.Sub(m.origin)) / float64(time.Millisecond)

	keep := m.engine.Tick(nowMs)
	m.frames.RecordFrame(now)

	state := m.engine.State()
	if state == game.StateGameOver && m.lastState != game.StateGameOver {
		m.recordRound()
	}
	m.lastState = state

	if !keep {
		m.ticking = false
		return m, nil
	}
	return m, tickCmd(m.fps)
}

// recordRound saves the finished round to score history and telemetry.
func (m *Model) recordRound() {
	res := m.engine.LastRound()
	m.rounds++

	if m.scores != nil && res.Score > 0 {
		if _, err := m.scores.SaveScore(m.mode, res.Score, res.PlayTime); err != nil {
			m.logger.Warn("could not save score", "err", err)
		}
	}

	rec := telemetry.NewRoundRecord(m.rounds, m.mode, res, m.frames.Stats())
	if err := m.recorder.WriteRound(rec); err != nil {
		m.logger.Warn("could not record round", "err", err)
	}
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, max(msg.Height-helpRows, 1))
	m.help.Width = msg.Width
	m.fitCanvas()
	return m, nil
}

// fitCanvas matches the engine canvas to the screen's aspect ratio.
func (m *Model) fitCanvas() {
	_, ch := m.engine.Canvas()
	w, h := FitCanvas(m.screen.Width(), m.screen.Height(), ch)
	if err := m.engine.Resize(w, h); err != nil {
		m.logger.Warn("could not resize canvas", "err", err)
		return
	}
	m.surface.SetCanvas(float64(w), float64(h))
}

// saveScreenshot saves the current screen to a text file.
func (m *Model) saveScreenshot() {
	m.engine.Render(m.surface)

	dir := m.screenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.status = "screenshot failed: no home directory"
			return
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed: " + err.Error()
		return
	}
	m.status = "saved " + path
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.engine.Render(m.surface)

	footer := m.status
	if footer == "" {
		footer = m.help.View(m.keys.Keys())
	}
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Rounds returns the number of rounds finished in this model.
func (m Model) Rounds() int {
	return m.rounds
}

// RunGame runs a single game until the player quits or goes back.
// It reports whether the player asked for the menu.
func RunGame(opts GameOptions) (backToMenu bool, err error) {
	opts.Embedded = false
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithReportFocus(), // Pause on focus loss
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
