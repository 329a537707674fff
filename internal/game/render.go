package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Paint is the fill used for a rectangle.
type Paint struct {
	Fill  rune
	Color core.Color
}

// Surface is a drawing target addressed in canvas units.
type Surface interface {
	Size() (w, h float64)
	FillRect(r core.Rect, p Paint)
	Text(x, y float64, s string, c core.Color)
	TextCentered(y float64, s string, c core.Color)
	Dim()
}

// Visual characters
const (
	cloudChar    = '░'
	pipeChar     = '█'
	capChar      = '▓'
	birdChar     = '█'
	groundChar   = '▒'
	grassChar    = '▀'
	wingUpChar   = '▀'
	wingDownChar = '▄'
)

// Pipe cap overhang and height, in canvas units.
const (
	capOverhang = 4
	capHeight   = 20
	grassHeight = 10
)

// Render draws the latest simulated state. It never advances the simulation.
func (e *Engine) Render(dst Surface) {
	w, h := dst.Size()
	groundY := e.canvasH - e.groundH

	dst.FillRect(core.NewRect(0, 0, w, h), Paint{Fill: ' ', Color: core.ColorSky})
	e.drawClouds(dst)

	for _, p := range e.pipes.items {
		drawPipe(dst, p, groundY)
	}

	e.drawBird(dst)

	dst.FillRect(core.NewRect(0, groundY, e.canvasW, e.groundH), Paint{Fill: groundChar, Color: core.ColorGround})
	dst.FillRect(core.NewRect(0, groundY, e.canvasW, grassHeight), Paint{Fill: grassChar, Color: core.ColorGrass})

	switch e.state {
	case StateIdle:
		dst.TextCentered(e.canvasH/2-120, "FLAPPY BIRD", core.ColorHighlight)
		dst.TextCentered(e.canvasH/2+80, "Press SPACE to start", core.ColorText)
		if e.highScore > 0 {
			dst.TextCentered(e.canvasH/2+110, fmt.Sprintf("Best: %d", e.highScore), core.ColorText)
		}
	case StateRunning:
		e.drawHUD(dst)
	case StatePaused:
		dst.Dim()
		e.drawHUD(dst)
		dst.TextCentered(e.canvasH/2-20, "PAUSED", core.ColorHighlight)
		dst.TextCentered(e.canvasH/2+20, "Press P or ESC to resume", core.ColorText)
	case StateGameOver:
		e.drawHUD(dst)
		dst.TextCentered(e.canvasH/2-60, "GAME OVER", core.ColorDanger)
		dst.TextCentered(e.canvasH/2-20, fmt.Sprintf("Score: %d  |  Best: %d", e.score, e.highScore), core.ColorText)
		if e.lastRound.NewBest {
			dst.TextCentered(e.canvasH/2+10, "NEW BEST!", core.ColorHighlight)
		}
		dst.TextCentered(e.canvasH/2+40, "Press SPACE or R to play again", core.ColorText)
	}
}

func (e *Engine) drawHUD(dst Surface) {
	dst.TextCentered(20, fmt.Sprintf("%d", e.score), core.ColorText)
	dst.Text(8, 8, fmt.Sprintf("Best %d", e.highScore), core.ColorGray)
}

// drawClouds drifts three clouds leftwards on a clock derived from simulated
// steps, so frames are reproducible. Each wraps around past the left edge.
func (e *Engine) drawClouds(dst Surface) {
	t := float64(e.steps) * e.timestep / 1000
	span := e.canvasW + 100

	clouds := [...]struct{ x, y, size, speed float64 }{
		{100 + math.Sin(t*0.1)*20, 80, 30, 10},
		{250 + math.Cos(t*0.15)*15, 100, 25, 6},
		{400 + math.Sin(t*0.2)*25, 60, 35, 14},
	}
	for _, c := range clouds {
		x := math.Mod(math.Mod(c.x-t*c.speed, span)+span, span) - 50
		dst.FillRect(core.NewRect(x, c.y-c.size/2, c.size*2.6, c.size), Paint{Fill: cloudChar, Color: core.ColorCloud})
	}
}

func drawPipe(dst Surface, p Pipe, groundY float64) {
	body := Paint{Fill: pipeChar, Color: core.ColorPipe}
	lip := Paint{Fill: capChar, Color: core.ColorPipeCap}

	dst.FillRect(p.TopRect(), body)
	dst.FillRect(core.NewRect(p.X-capOverhang, p.Height-capHeight, p.Width+2*capOverhang, capHeight), lip)

	bottomY := p.Height + p.Gap
	if bottomY < groundY {
		dst.FillRect(core.NewRect(p.X, bottomY, p.Width, groundY-bottomY), body)
		dst.FillRect(core.NewRect(p.X-capOverhang, bottomY, p.Width+2*capOverhang, capHeight), lip)
	}
}

func (e *Engine) drawBird(dst Surface) {
	b := e.bird
	w, h := b.Size()

	dst.FillRect(core.NewRect(b.X-w/2, b.Y-h/2, w, h), Paint{Fill: birdChar, Color: core.ColorBird})

	// Beak tilts with the rotation.
	beak := '▶'
	switch {
	case b.Rotation > 0.6:
		beak = '◢'
	case b.Rotation < -0.2:
		beak = '◥'
	}
	dst.FillRect(core.NewRect(b.X+w/2-4, b.Y-5, 10, 10), Paint{Fill: beak, Color: core.ColorBeak})

	flap := math.Sin(b.Phase*0.5)*0.5 + 0.5
	wing := wingDownChar
	if flap > 0.5 {
		wing = wingUpChar
	}
	dst.FillRect(core.NewRect(b.X-w/2, b.Y+flap*3-3, w/2, 8), Paint{Fill: wing, Color: core.ColorBeak})
}
