package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// skyColor is the playfield background.
const skyColor = lipgloss.Color("#87CEEB")

// colorStyles maps core.Color to lipgloss styles. Every game cell sits on the
// sky so blank cells and glyphs share one background.
var colorStyles = func() map[core.Color]lipgloss.Style {
	sky := lipgloss.NewStyle().Background(skyColor)
	fg := func(c string) lipgloss.Style {
		return sky.Foreground(lipgloss.Color(c))
	}
	return map[core.Color]lipgloss.Style{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorSky:       sky,
		core.ColorCloud:     fg("#FFFFFF"),
		core.ColorBird:      fg("#FFD700"),
		core.ColorBeak:      fg("#FF8C00"),
		core.ColorPipe:      fg("#27ae60"),
		core.ColorPipeCap:   fg("#219653"),
		core.ColorGround:    fg("#8B4513"),
		core.ColorGrass:     fg("#2ecc71"),
		core.ColorText:      fg("#FFFFFF").Bold(true),
		core.ColorHighlight: fg("#FFD700").Bold(true),
		core.ColorDanger:    fg("#e74c3c").Bold(true),
		core.ColorGray:      fg("#7f8c8d"),
	}
}()

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
