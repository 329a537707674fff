package game

import (
	"slices"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

type fillCall struct {
	rect  core.Rect
	paint Paint
}

type recordingSurface struct {
	w, h  float64
	fills []fillCall
	texts []string
	dims  int
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }

func (s *recordingSurface) FillRect(r core.Rect, p Paint) {
	s.fills = append(s.fills, fillCall{r, p})
}

func (s *recordingSurface) Text(_, _ float64, text string, _ core.Color) {
	s.texts = append(s.texts, text)
}

func (s *recordingSurface) TextCentered(_ float64, text string, _ core.Color) {
	s.texts = append(s.texts, text)
}

func (s *recordingSurface) Dim() { s.dims++ }

func (s *recordingSurface) hasFill(r core.Rect, c core.Color) bool {
	for _, f := range s.fills {
		if f.rect == r && f.paint.Color == c {
			return true
		}
	}
	return false
}

func TestRenderOverlays(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
		want  []string
		dims  int
	}{
		{"idle", func(*Engine) {}, []string{"FLAPPY BIRD", "Press SPACE to start"}, 0},
		{"running", func(e *Engine) { e.Start() }, []string{"0", "Best 0"}, 0},
		{"paused", func(e *Engine) { e.Start(); e.Pause() }, []string{"PAUSED", "Press P or ESC to resume"}, 1},
		{"game over", func(e *Engine) {
			e.Start()
			e.bird.Y = 600
			e.step()
		}, []string{"GAME OVER", "Score: 0  |  Best: 0"}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(t, nil, nil)
			tc.setup(e)

			dst := &recordingSurface{w: 400, h: 600}
			e.Render(dst)

			for _, text := range tc.want {
				if !slices.Contains(dst.texts, text) {
					t.Errorf("missing text %q in %q", text, dst.texts)
				}
			}
			if dst.dims != tc.dims {
				t.Errorf("Dim called %d times, expected %d", dst.dims, tc.dims)
			}
		})
	}
}

func TestRenderDrawsScene(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.Start()
	e.pipes.items = append(e.pipes.items, Pipe{X: 200, Width: 52, Height: 150, Gap: 120})

	dst := &recordingSurface{w: 400, h: 600}
	e.Render(dst)

	if !dst.hasFill(core.NewRect(0, 0, 400, 600), core.ColorSky) {
		t.Error("expected sky fill over the whole surface")
	}
	if !dst.hasFill(core.NewRect(200, 0, 52, 150), core.ColorPipe) {
		t.Error("expected top pipe segment")
	}
	if !dst.hasFill(core.NewRect(200, 270, 52, 250), core.ColorPipe) {
		t.Error("expected bottom pipe segment clipped at the ground")
	}
	if !dst.hasFill(core.NewRect(83, 288, 34, 24), core.ColorBird) {
		t.Error("expected bird body centred on its position")
	}
	if !dst.hasFill(core.NewRect(0, 520, 400, 80), core.ColorGround) {
		t.Error("expected ground strip")
	}
}

func TestRenderDoesNotStep(t *testing.T) {
	e := newTestEngine(t, nil, nil)
	e.Start()
	before := e.Snapshot()

	e.Render(&recordingSurface{w: 400, h: 600})

	if e.Snapshot().Bird != before.Bird || e.Stats().Steps != 0 {
		t.Error("Render must not advance the simulation")
	}
}

func TestRenderCloudsDrift(t *testing.T) {
	e := newTestEngine(t, nil, nil)

	firstCloudX := func() float64 {
		s := &recordingSurface{w: 400, h: 600}
		e.Render(s)
		for _, f := range s.fills {
			if f.paint.Color == core.ColorCloud {
				return f.rect.X
			}
		}
		t.Fatal("no cloud drawn")
		return 0
	}

	start := firstCloudX()
	e.steps = 600 // ten simulated seconds
	later := firstCloudX()

	// The wobble alone moves a cloud by at most 40 units.
	if start-later < 40 {
		t.Errorf("cloud moved from %v to %v, expected it to drift left", start, later)
	}
}
