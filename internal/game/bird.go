package game

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player entity. X and Y are the centre of the sprite in canvas
// units; positive velocity points down.
type Bird struct {
	X, Y     float64
	Velocity float64
	Rotation float64 // Radians, smoothed toward a velocity-derived target
	Phase    float64 // Wing animation phase, in reference frames since the last flap

	spawnX, spawnY float64
	cfg            config.BirdConfig
	refFrameMs     float64
}

// NewBird creates a bird at the given spawn point. refFrameMs is the duration
// that one unit of gravity and one unit of velocity correspond to.
func NewBird(cfg config.BirdConfig, spawnX, spawnY, refFrameMs float64) *Bird {
	b := &Bird{
		spawnX:     spawnX,
		spawnY:     spawnY,
		cfg:        cfg,
		refFrameMs: refFrameMs,
	}
	b.Reset()
	return b
}

// Update integrates gravity over deltaMs and eases the rotation.
func (b *Bird) Update(deltaMs float64) {
	frames := deltaMs / b.refFrameMs

	b.Velocity += b.cfg.Gravity * frames
	b.Y += b.Velocity
	b.Phase += frames

	target := core.ClampF(b.Velocity*b.cfg.RotationFactor, b.cfg.MinRotation, b.cfg.MaxRotation)
	b.Rotation += (target - b.Rotation) * b.cfg.RotationSmoothing

	assertFinite("bird.y", b.Y)
	assertFinite("bird.velocity", b.Velocity)
}

// Flap overwrites the velocity with the upward impulse.
func (b *Bird) Flap() {
	b.Velocity = b.cfg.FlapImpulse
	b.Phase = 0
}

// Reset puts the bird back at its spawn point at rest.
func (b *Bird) Reset() {
	b.X = b.spawnX
	b.Y = b.spawnY
	b.Velocity = 0
	b.Rotation = 0
	b.Phase = 0
}

// SetSpawn moves the spawn point. It takes effect on the next Reset.
func (b *Bird) SetSpawn(x, y float64) {
	b.spawnX = x
	b.spawnY = y
}

// Bounds returns the collision box: the sprite scaled down around its centre.
func (b *Bird) Bounds() core.Rect {
	w := b.cfg.Width * b.cfg.BoundsScale
	h := b.cfg.Height * b.cfg.BoundsScale
	return core.NewRect(b.X-w/2, b.Y-h/2, w, h)
}

// Size returns the visual sprite size.
func (b *Bird) Size() (w, h float64) {
	return b.cfg.Width, b.cfg.Height
}
