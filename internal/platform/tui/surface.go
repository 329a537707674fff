package tui

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
)

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// ScaledSurface draws canvas-unit geometry onto a character Screen.
// It implements game.Surface.
type ScaledSurface struct {
	screen           *core.Screen
	canvasW, canvasH float64
}

// NewScaledSurface maps a canvasW x canvasH canvas onto screen.
func NewScaledSurface(screen *core.Screen, canvasW, canvasH float64) *ScaledSurface {
	return &ScaledSurface{screen: screen, canvasW: canvasW, canvasH: canvasH}
}

// SetCanvas changes the canvas size being mapped.
func (s *ScaledSurface) SetCanvas(w, h float64) {
	s.canvasW, s.canvasH = w, h
}

// Size returns the canvas size.
func (s *ScaledSurface) Size() (w, h float64) {
	return s.canvasW, s.canvasH
}

func (s *ScaledSurface) scale() (sx, sy float64) {
	return float64(s.screen.Width()) / s.canvasW, float64(s.screen.Height()) / s.canvasH
}

// FillRect fills every cell the rectangle covers. Edges are clipped to the
// canvas, so segments with infinite height are drawn to the bottom.
// A non-empty rectangle always covers at least one cell.
func (s *ScaledSurface) FillRect(r core.Rect, p game.Paint) {
	x0, x1 := math.Max(r.X, 0), math.Min(r.Right(), s.canvasW)
	y0, y1 := math.Max(r.Y, 0), math.Min(r.Bottom(), s.canvasH)
	if x1 <= x0 || y1 <= y0 {
		return
	}

	sx, sy := s.scale()
	cx0, cx1 := int(math.Floor(x0*sx)), int(math.Ceil(x1*sx))
	cy0, cy1 := int(math.Floor(y0*sy)), int(math.Ceil(y1*sy))
	// Rounding both edges outward makes thin shapes bleed; keep the far edge
	// tight unless that would leave nothing.
	if f := int(math.Floor(x1 * sx)); f > cx0 {
		cx1 = f
	}
	if f := int(math.Floor(y1 * sy)); f > cy0 {
		cy1 = f
	}

	s.screen.FillCells(cx0, cy0, cx1-cx0, cy1-cy0, p.Fill, p.Color)
}

// Text draws s starting at canvas point (x, y).
func (s *ScaledSurface) Text(x, y float64, str string, c core.Color) {
	sx, sy := s.scale()
	s.screen.DrawText(int(x*sx), int(y*sy), str, c)
}

// TextCentered draws s centered horizontally at canvas height y.
func (s *ScaledSurface) TextCentered(y float64, str string, c core.Color) {
	_, sy := s.scale()
	s.screen.DrawTextCentered(int(y*sy), str, c)
}

// Dim grays out everything drawn so far.
func (s *ScaledSurface) Dim() {
	s.screen.Dim()
}

// FitCanvas returns a canvas of the given height whose aspect ratio matches
// a cols x rows terminal. The width never drops below game.MinCanvasWidth.
func FitCanvas(cols, rows int, height float64) (w, h int) {
	h = max(int(height), game.MinCanvasHeight)
	if cols <= 0 || rows <= 0 {
		return game.MinCanvasWidth, h
	}
	w = int(math.Round(float64(h) * float64(cols) / (float64(rows) * cellAspect)))
	return max(w, game.MinCanvasWidth), h
}

var _ game.Surface = (*ScaledSurface)(nil)
