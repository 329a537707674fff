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

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

const scoreboardLimit = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll   key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.NextMode, k.PrevMode, k.Back, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings. Table scrolling is
// handled by the table's own key map; Scroll only documents it.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FFD700")).
			Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#27ae60")).
			Padding(0, 1)
	boardEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
	boardSummaryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardModel shows the score history of one difficulty preset at a
// time, with a tab strip to switch presets.
type ScoreboardModel struct {
	store   *storage.Store
	modes   []config.DifficultyPreset
	current int

	scores  []storage.ScoreEntry
	summary telemetry.Summary

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard opened on initial. An unknown or
// empty preset opens on the first tab.
func NewScoreboardModel(store *storage.Store, initial config.DifficultyPreset, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  config.Presets(),
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	for i, p := range m.modes {
		if p == initial {
			m.current = i
		}
	}
	m.table = newScoreTable(width, height)
	m.loadScores()
	return m
}

// newScoreTable sizes the table to the terminal. Only the date column grows.
func newScoreTable(width, height int) table.Model {
	dateW := 14
	if width > 52 {
		dateW = min(width-38, 20)
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "Time", Width: 7},
			{Title: "Date", Width: dateW},
		}),
		table.WithFocused(true),
		table.WithHeight(max(height-11, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#27ae60"))
	s.Selected = s.Selected.Bold(false).
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#87CEEB"))
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) currentMode() config.DifficultyPreset {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.current]
}

// loadScores refreshes the rows and the summary for the current preset.
// Storage errors leave the board empty.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.summary = nil, telemetry.Summary{}

	if m.store != nil {
		mode := string(m.currentMode())
		if top, err := m.store.TopScores(mode, scoreboardLimit); err == nil {
			m.scores = top
		}
		if all, err := m.store.AllScores(mode); err == nil {
			values := make([]int, 0, len(all))
			for _, e := range all {
				values = append(values, e.Score)
			}
			m.summary = telemetry.Summarize(values)
		}
	}

	rows := make([]table.Row, 0, len(m.scores))
	for i, e := range m.scores {
		rows = append(rows, table.Row{
			fmt.Sprint(i + 1),
			fmt.Sprint(e.Score),
			formatDuration(e.Duration),
			e.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatDuration renders a round length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (m *ScoreboardModel) shiftMode(by int) {
	if n := len(m.modes); n > 0 {
		m.current = (m.current + by + n) % n
		m.loadScores()
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.shiftMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.shiftMode(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(m.width, m.height)
		m.loadScores()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("HIGH SCORES - %s", strings.ToUpper(string(m.currentMode())))
	b.WriteString(centerText(boardTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabStrip(), m.width))
	b.WriteString("\n\n")

	if len(m.scores) == 0 {
		b.WriteString(boardFrameStyle.Render(boardEmptyStyle.Render("No flights logged yet.\nPlay a round to get on the board!")))
	} else {
		b.WriteString(boardFrameStyle.Render(m.table.View()))
	}
	b.WriteString("\n")

	if line := m.summaryLine(); line != "" {
		b.WriteString(boardSummaryStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(menuDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// tabStrip lists every preset, collapsing to "< current >" when the
// terminal is too narrow.
func (m ScoreboardModel) tabStrip() string {
	tabs := make([]string, len(m.modes))
	for i, p := range m.modes {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(string(p))
		} else {
			tabs[i] = boardTabStyle.Render(string(p))
		}
	}
	strip := strings.Join(tabs, " ")
	if lipgloss.Width(strip) > m.width-4 {
		return boardActiveTab.Render(fmt.Sprintf("< %s >", m.currentMode()))
	}
	return strip
}

// summaryLine describes the score distribution of the current preset.
func (m ScoreboardModel) summaryLine() string {
	s := m.summary
	if s.Count == 0 {
		return ""
	}
	return fmt.Sprintf("%d games  |  mean %.1f ± %.1f  |  median %.0f  |  p90 %.0f  |  best %d",
		s.Count, s.Mean, s.StdDev, s.Median, s.P90, s.Best)
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard runs the scoreboard as its own program and reports whether
// the user went back rather than quitting.
func RunScoreboard(store *storage.Store, initial config.DifficultyPreset, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, initial, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
