package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

const testTimestep = 1000.0 / 60.0

func newTestBird() *Bird {
	return NewBird(config.DefaultFlappyConfig().Bird, 100, 300, testTimestep)
}

func TestBirdFallsWithoutFlap(t *testing.T) {
	b := newTestBird()
	rng := rand.New(rand.NewSource(3))

	prev := b.Velocity
	for i := 0; i < 500; i++ {
		delta := 0.5 + rng.Float64()*99.5 // (0, 100]
		b.Update(delta)
		if b.Velocity <= prev {
			t.Fatalf("update %d: velocity %v did not increase from %v", i, b.Velocity, prev)
		}
		expected := prev + 0.5*delta/testTimestep
		if math.Abs(b.Velocity-expected) > 1e-9 {
			t.Fatalf("update %d: velocity = %v, expected %v", i, b.Velocity, expected)
		}
		prev = b.Velocity
	}
}

func TestBirdFlapOverwritesVelocity(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
	}{
		{"at rest", 0},
		{"falling fast", 25},
		{"already rising", -3},
		{"right after a flap", -8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := newTestBird()
			b.Velocity = tc.velocity
			b.Phase = 12
			b.Flap()
			if b.Velocity != -8 {
				t.Errorf("Velocity = %v, expected -8", b.Velocity)
			}
			if b.Phase != 0 {
				t.Errorf("Phase = %v, expected 0 after flap", b.Phase)
			}
		})
	}
}

func TestBirdFlapThenStep(t *testing.T) {
	b := newTestBird()
	b.Update(testTimestep)
	b.Update(testTimestep)

	b.Flap()
	if b.Velocity != -8 {
		t.Fatalf("Velocity after flap = %v, expected -8", b.Velocity)
	}

	y := b.Y
	b.Update(testTimestep)
	if b.Velocity != -7.5 {
		t.Errorf("Velocity after one step = %v, expected -7.5", b.Velocity)
	}
	if b.Y != y-7.5 {
		t.Errorf("Y = %v, expected %v", b.Y, y-7.5)
	}
}

func TestBirdReset(t *testing.T) {
	b := newTestBird()
	for i := 0; i < 40; i++ {
		if i%7 == 0 {
			b.Flap()
		}
		b.Update(testTimestep)
	}

	b.Reset()
	if b.X != 100 || b.Y != 300 {
		t.Errorf("position = (%v, %v), expected (100, 300)", b.X, b.Y)
	}
	if b.Velocity != 0 || b.Rotation != 0 || b.Phase != 0 {
		t.Errorf("expected zeroed motion, got v=%v rot=%v phase=%v", b.Velocity, b.Rotation, b.Phase)
	}
}

func TestBirdRotationBounded(t *testing.T) {
	cfg := config.DefaultFlappyConfig().Bird
	b := newTestBird()

	// Long free fall pushes the target to the upper bound.
	for i := 0; i < 300; i++ {
		b.Update(testTimestep)
		if b.Rotation > cfg.MaxRotation || b.Rotation < cfg.MinRotation {
			t.Fatalf("rotation %v left [%v, %v]", b.Rotation, cfg.MinRotation, cfg.MaxRotation)
		}
	}
	if math.Abs(b.Rotation-cfg.MaxRotation) > 0.01 {
		t.Errorf("rotation should settle near %v, got %v", cfg.MaxRotation, b.Rotation)
	}

	// A flap points it upward, never past the lower bound.
	for i := 0; i < 10; i++ {
		b.Flap()
		b.Update(testTimestep)
		if b.Rotation < cfg.MinRotation {
			t.Fatalf("rotation %v below %v", b.Rotation, cfg.MinRotation)
		}
	}
}

func TestBirdBounds(t *testing.T) {
	b := newTestBird()
	r := b.Bounds()

	if math.Abs(r.W-27.2) > 1e-9 || math.Abs(r.H-19.2) > 1e-9 {
		t.Errorf("bounds size = %vx%v, expected 27.2x19.2", r.W, r.H)
	}
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	if math.Abs(cx-100) > 1e-9 || math.Abs(cy-300) > 1e-9 {
		t.Errorf("bounds centre = (%v, %v), expected (100, 300)", cx, cy)
	}
}

func TestBirdSetSpawn(t *testing.T) {
	b := newTestBird()
	b.SetSpawn(50, 150)
	if b.X != 100 {
		t.Error("SetSpawn should not move the bird before Reset")
	}
	b.Reset()
	if b.X != 50 || b.Y != 150 {
		t.Errorf("after Reset position = (%v, %v), expected (50, 150)", b.X, b.Y)
	}
}
