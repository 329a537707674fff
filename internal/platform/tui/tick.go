// Package tui provides the Bubble Tea host for the flappy engine.
// It drives the engine from display frames, maps keys to actions and
// renders the engine's Surface output to the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per display frame while a round is active.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that delivers the next display frame.
func tickCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
