package game

import (
	"math"
	"math/rand"
	"slices"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe is a vertical obstacle: a top segment of the given height, then a gap,
// then a bottom segment reaching past the ground.
type Pipe struct {
	X      float64 // Left edge
	Width  float64
	Height float64 // Top segment height
	Gap    float64 // Vertical clearance, fixed at spawn time
	Passed bool    // Whether this pipe has already scored
}

// TopRect returns the collision rectangle for the top segment.
func (p Pipe) TopRect() core.Rect {
	return core.NewRect(p.X, 0, p.Width, p.Height)
}

// BottomRect returns the collision rectangle for the bottom segment.
// It extends without limit so the bird cannot slip under it.
func (p Pipe) BottomRect() core.Rect {
	return core.NewRect(p.X, p.Height+p.Gap, p.Width, math.Inf(1))
}

// Pipes spawns, scrolls, scores and removes obstacles.
type Pipes struct {
	items []Pipe // Oldest first

	speed float64
	gap   float64
	frame int
	score int

	lastSpawnX float64 // Scrolls with the pipes
	hasSpawned bool
	spawned    int

	canvasW, canvasH float64
	groundH          float64
	refFrameMs       float64

	cfg        config.PipesConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
}

// NewPipes creates a pipe generator for the given canvas.
func NewPipes(cfg config.PipesConfig, diff *config.DifficultyManager, canvasW, canvasH, groundH, refFrameMs float64, seed int64) *Pipes {
	p := &Pipes{
		items:      make([]Pipe, 0, 8),
		canvasW:    canvasW,
		canvasH:    canvasH,
		groundH:    groundH,
		refFrameMs: refFrameMs,
		cfg:        cfg,
		difficulty: diff,
	}
	p.Reset(seed)
	return p
}

// Reset clears all pipes and restores the starting speed, gap and score.
func (p *Pipes) Reset(seed int64) {
	p.items = p.items[:0]
	p.frame = 0
	p.score = 0
	p.speed = p.cfg.Speed
	p.gap = p.cfg.Gap
	p.lastSpawnX = p.canvasW
	p.hasSpawned = false
	p.spawned = 0
	p.rng = rand.New(rand.NewSource(seed))
}

// Resize updates the canvas geometry used for spawning, removal and scoring.
// Pipes on screen and the last-spawn marker keep their relative x position.
func (p *Pipes) Resize(canvasW, canvasH float64) {
	if p.canvasW > 0 && canvasW != p.canvasW {
		scale := canvasW / p.canvasW
		for i := range p.items {
			p.items[i].X *= scale
		}
		p.lastSpawnX *= scale
	}
	p.canvasW = canvasW
	p.canvasH = canvasH
}

// Update advances the generator by one step of deltaMs.
func (p *Pipes) Update(deltaMs float64) {
	p.frame++

	if p.frame%p.cfg.SpawnInterval == 0 ||
		(len(p.items) == 0 && p.frame%p.cfg.FirstSpawnInterval == 0) {
		p.spawnPipe()
	}

	dx := p.speed * (deltaMs / p.refFrameMs)
	p.lastSpawnX -= dx

	scoreLine := p.canvasW * p.cfg.ScoreLine

	// Newest to oldest so removal does not shift unvisited pipes.
	for i := len(p.items) - 1; i >= 0; i-- {
		pipe := &p.items[i]
		pipe.X -= dx

		if pipe.X+pipe.Width < -p.cfg.RemovalMargin {
			p.items = slices.Delete(p.items, i, i+1)
			continue
		}

		if !pipe.Passed && pipe.X+pipe.Width < scoreLine {
			pipe.Passed = true
			p.score++
			if p.difficulty.IsStep(p.score) {
				p.speed = p.difficulty.Speed(p.cfg.Speed, p.score)
				p.gap = p.difficulty.GapSize(p.cfg.Gap, p.score)
			}
		}
	}
}

// spawnPipe adds a pipe at the right edge. It returns false when the trigger
// is skipped, either because the canvas cannot fit the gap or because the
// previous spawn is still too close.
func (p *Pipes) spawnPipe() bool {
	minH := p.cfg.MinHeight
	maxH := p.canvasH - p.gap - minH - p.groundH
	if maxH < minH {
		return false
	}

	if p.hasSpawned && p.canvasW-p.lastSpawnX < p.canvasW*p.cfg.MinSpacing {
		return false
	}

	height := minH + p.rng.Float64()*(maxH-minH)
	p.items = append(p.items, Pipe{
		X:      p.canvasW,
		Width:  p.cfg.Width,
		Height: height,
		Gap:    p.gap,
	})
	p.lastSpawnX = p.canvasW
	p.hasSpawned = true
	p.spawned++
	return true
}

// Pipes returns a copy of the current obstacles, oldest first.
func (p *Pipes) Pipes() []Pipe {
	return slices.Clone(p.items)
}

// Score returns the number of pipes passed this round.
func (p *Pipes) Score() int {
	return p.score
}

// Speed returns the current scroll speed in canvas units per reference frame.
func (p *Pipes) Speed() float64 {
	return p.speed
}

// Gap returns the gap that the next spawned pipe will get.
func (p *Pipes) Gap() float64 {
	return p.gap
}

// Spawned returns how many pipes were spawned this round.
func (p *Pipes) Spawned() int {
	return p.spawned
}

// Len returns the number of pipes currently tracked.
func (p *Pipes) Len() int {
	return len(p.items)
}
