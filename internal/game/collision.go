package game

import "github.com/vovakirdan/tui-flappy/internal/core"

// CheckBirdPipes reports whether the bird box overlaps any pipe segment.
func CheckBirdPipes(bird core.Rect, pipes []Pipe) bool {
	for _, p := range pipes {
		if bird.Intersects(p.TopRect()) || bird.Intersects(p.BottomRect()) {
			return true
		}
	}
	return false
}

// CheckBirdBounds reports whether the bird box touches the ground line or the
// top of the canvas.
func CheckBirdBounds(bird core.Rect, canvasH, groundH float64) bool {
	return bird.Bottom() >= canvasH-groundH || bird.Y <= 0
}
