package tui

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
)

func TestScaledSurfaceFillRect(t *testing.T) {
	tests := []struct {
		name           string
		rect           core.Rect
		x0, y0, x1, y1 int // Expected filled cell range, exclusive end
	}{
		{"aligned", core.NewRect(0, 0, 100, 100), 0, 0, 10, 5},
		{"fractional", core.NewRect(15, 30, 20, 40), 1, 1, 3, 3},
		{"thin rect keeps one cell", core.NewRect(52, 41, 2, 2), 5, 2, 6, 3},
		{"infinite height", core.NewRect(100, 100, 50, math.Inf(1)), 10, 5, 15, 10},
		{"clipped left", core.NewRect(-50, 0, 80, 20), 0, 0, 3, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			screen := core.NewScreen(20, 10)
			s := NewScaledSurface(screen, 200, 200) // 10 units per column, 20 per row

			s.FillRect(tc.rect, game.Paint{Fill: '#', Color: core.ColorPipe})

			for y := 0; y < screen.Height(); y++ {
				for x := 0; x < screen.Width(); x++ {
					inside := x >= tc.x0 && x < tc.x1 && y >= tc.y0 && y < tc.y1
					if got := screen.Get(x, y) == '#'; got != inside {
						t.Fatalf("cell (%d, %d) filled = %v, expected %v\n%s", x, y, got, inside, screen.String())
					}
				}
			}
		})
	}
}

func TestScaledSurfaceEmptyRect(t *testing.T) {
	screen := core.NewScreen(20, 10)
	s := NewScaledSurface(screen, 200, 200)

	s.FillRect(core.NewRect(300, 0, 50, 50), game.Paint{Fill: '#'})
	s.FillRect(core.NewRect(10, 10, 0, 50), game.Paint{Fill: '#'})

	if screen.String() != core.NewScreen(20, 10).String() {
		t.Errorf("off-canvas or empty rects should draw nothing:\n%s", screen.String())
	}
}

func TestScaledSurfaceText(t *testing.T) {
	screen := core.NewScreen(20, 10)
	s := NewScaledSurface(screen, 200, 200)

	s.Text(30, 40, "hi", core.ColorText)
	if screen.Row(2)[3:5] != "hi" {
		t.Errorf("Text at (30, 40) should land on cell (3, 2), row = %q", screen.Row(2))
	}

	s.TextCentered(100, "ok", core.ColorText)
	if screen.Row(5)[9:11] != "ok" {
		t.Errorf("TextCentered should center on row 5, row = %q", screen.Row(5))
	}

	if w, h := s.Size(); w != 200 || h != 200 {
		t.Errorf("Size() = %vx%v, expected 200x200", w, h)
	}
}

func TestFitCanvas(t *testing.T) {
	tests := []struct {
		cols, rows int
		height     float64
		w, h       int
	}{
		{80, 24, 600, 1000, 600},
		{40, 40, 600, 300, 600},
		{10, 50, 600, game.MinCanvasWidth, 600},
		{80, 24, 100, 500, game.MinCanvasHeight},
		{0, 0, 600, game.MinCanvasWidth, 600},
	}

	for _, tc := range tests {
		w, h := FitCanvas(tc.cols, tc.rows, tc.height)
		if w != tc.w || h != tc.h {
			t.Errorf("FitCanvas(%d, %d, %v) = %dx%d, expected %dx%d", tc.cols, tc.rows, tc.height, w, h, tc.w, tc.h)
		}
	}
}

func TestBellHaptics(t *testing.T) {
	var buf bytes.Buffer
	now := time.Unix(100, 0)
	b := NewBellHaptics(&buf)
	b.now = func() time.Time { return now }

	b.Vibrate(50 * time.Millisecond)
	b.Vibrate(50 * time.Millisecond) // Within cooldown
	now = now.Add(time.Second)
	b.Vibrate(200*time.Millisecond, 100*time.Millisecond, 200*time.Millisecond)
	b.Vibrate() // Empty pattern

	if got := buf.String(); got != "\a\a" {
		t.Errorf("bell output = %q, expected two bells", got)
	}

	var nilBell *BellHaptics
	nilBell.Vibrate(time.Millisecond) // Must not panic
}
