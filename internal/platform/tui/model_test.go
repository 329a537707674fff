package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/storage"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

func newTestModel(t *testing.T, opts GameOptions) Model {
	t.Helper()

	engine, err := NewEngine(EngineOptions{
		Base: config.DefaultFlappyConfig(),
		Seed: 1,
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	opts.Engine = engine
	opts.Width, opts.Height = 80, 25
	opts.Logger = log.New(io.Discard)
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = t.TempDir()
	}
	return NewModel(opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// playUntilOver feeds frames 50ms apart until the engine stops asking for them.
func playUntilOver(t *testing.T, m Model, start time.Time) Model {
	t.Helper()
	now := start
	for i := 0; i < 1000; i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, TickMsg(now))
		if cmd == nil {
			return m
		}
		now = now.Add(50 * time.Millisecond)
	}
	t.Fatal("round never ended")
	return m
}

func TestModelIdleUntilStart(t *testing.T) {
	m := newTestModel(t, GameOptions{})

	if m.Init() != nil {
		t.Error("Init should not start ticking while idle")
	}
	if !strings.Contains(m.View(), "FLAPPY BIRD") {
		t.Error("idle view should show the title")
	}

	w, h := m.engine.Canvas()
	if w != 1000 || h != 600 {
		t.Errorf("canvas = %vx%v, expected fitted 1000x600", w, h)
	}
}

func TestModelFlapStartsRound(t *testing.T) {
	m := newTestModel(t, GameOptions{})

	m, cmd := update(t, m, runeKey('w'))
	if m.engine.State() != game.StateRunning {
		t.Fatalf("state = %v, expected running", m.engine.State())
	}
	if cmd == nil {
		t.Fatal("starting a round should schedule a frame")
	}

	// A second flap while the chain is running must not start another chain.
	m, cmd = update(t, m, runeKey('w'))
	if cmd != nil {
		t.Error("flap during a round should not schedule extra frames")
	}

	start := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg(start))
	m, cmd = update(t, m, TickMsg(start.Add(100*time.Millisecond)))
	if cmd == nil {
		t.Error("running engine should keep receiving frames")
	}
	if m.engine.Stats().Steps == 0 {
		t.Error("engine should have stepped after 100ms")
	}
}

func TestModelPauseKeepsTicking(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	m, _ = update(t, m, runeKey('w'))

	start := time.Unix(1000, 0)
	m, _ = update(t, m, TickMsg(start))
	m, _ = update(t, m, runeKey('p'))
	if m.engine.State() != game.StatePaused {
		t.Fatalf("state = %v, expected paused", m.engine.State())
	}

	steps := m.engine.Stats().Steps
	m, cmd := update(t, m, TickMsg(start.Add(time.Second)))
	if cmd == nil {
		t.Error("paused engine should keep receiving frames")
	}
	if m.engine.Stats().Steps != steps {
		t.Error("paused engine should not step")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("paused view should show the overlay")
	}

	m, _ = update(t, m, runeKey('p'))
	if m.engine.State() != game.StateRunning {
		t.Errorf("state = %v, expected running after resume", m.engine.State())
	}
}

func TestModelBlurPauses(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	m, _ = update(t, m, runeKey('w'))

	m, _ = update(t, m, tea.BlurMsg{})
	if m.engine.State() != game.StatePaused {
		t.Errorf("state = %v, expected paused on focus loss", m.engine.State())
	}
}

func TestModelGameOverRecordsRound(t *testing.T) {
	dir := t.TempDir()
	rec, err := telemetry.NewRecorder(filepath.Join(dir, "telemetry"))
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}
	store, err := storage.Open(filepath.Join(dir, "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	m := newTestModel(t, GameOptions{Scores: store, Recorder: rec, Mode: "normal"})
	m, _ = update(t, m, runeKey('w'))

	// Without flaps the bird falls to the ground before the first pipe.
	m = playUntilOver(t, m, time.Unix(1000, 0))
	if m.engine.State() != game.StateGameOver {
		t.Fatalf("state = %v, expected game over", m.engine.State())
	}
	if m.Rounds() != 1 {
		t.Errorf("Rounds() = %d, expected 1", m.Rounds())
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("view should show the game over overlay")
	}

	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "telemetry", "rounds.csv"))
	if err != nil {
		t.Fatalf("reading rounds.csv: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 2 {
		t.Errorf("rounds.csv has %d lines, expected header + 1 row", len(lines))
	}

	// Zero-point rounds are not kept in score history.
	scores, err := store.AllScores("")
	if err != nil {
		t.Fatalf("AllScores() error = %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("expected no saved scores, got %d", len(scores))
	}

	// Restart runs a new frame chain.
	m, cmd := update(t, m, runeKey('r'))
	if m.engine.State() != game.StateRunning || cmd == nil {
		t.Errorf("restart: state = %v, cmd nil = %v", m.engine.State(), cmd == nil)
	}
}

func TestModelBack(t *testing.T) {
	m := newTestModel(t, GameOptions{})
	m, _ = update(t, m, runeKey('w'))

	m, cmd := update(t, m, runeKey('b'))
	if m.BackToMenu() || cmd != nil {
		t.Fatal("back should be ignored while a round is running")
	}

	m, _ = update(t, m, runeKey('p'))
	m, cmd = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back from pause should request the menu")
	}
	if !isQuit(cmd) {
		t.Error("standalone model should quit the program on back")
	}
	if m.engine.State() != game.StateIdle {
		t.Errorf("state = %v, expected idle after teardown", m.engine.State())
	}
}

func TestModelBackEmbedded(t *testing.T) {
	m := newTestModel(t, GameOptions{Embedded: true})

	m, cmd := update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("back from idle should request the menu")
	}
	if cmd != nil {
		t.Error("embedded model should leave quitting to its parent")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, GameOptions{})

	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || !isQuit(cmd) {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, GameOptions{ScreenshotDir: dir})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "flappy_") {
		t.Fatalf("expected one screenshot, got %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("reading screenshot: %v", err)
	}
	if !strings.Contains(string(data), "FLAPPY BIRD") {
		t.Error("screenshot should contain the rendered screen")
	}
	if !strings.Contains(m.View(), "saved ") {
		t.Error("footer should report the saved path")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, GameOptions{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 41})
	if m.screen.Width() != 40 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 40x40", m.screen.Width(), m.screen.Height())
	}
	if w, _ := m.engine.Canvas(); w != 300 {
		t.Errorf("canvas width = %v, expected 300", w)
	}
}
