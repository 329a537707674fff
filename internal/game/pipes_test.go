package game

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func newTestPipes(cfg config.FlappyConfig, seed int64) *Pipes {
	return NewPipes(cfg.Pipes, config.NewDifficultyManager(cfg.Difficulty),
		float64(cfg.Canvas.Width), float64(cfg.Canvas.Height), cfg.Canvas.GroundHeight, testTimestep, seed)
}

func TestPipesFirstSpawn(t *testing.T) {
	p := newTestPipes(config.DefaultFlappyConfig(), 1)

	for i := 0; i < 59; i++ {
		p.Update(testTimestep)
	}
	if p.Len() != 0 {
		t.Fatalf("expected no pipes before frame 60, got %d", p.Len())
	}

	p.Update(testTimestep)
	if p.Len() != 1 {
		t.Fatalf("expected first pipe at frame 60, got %d", p.Len())
	}

	// Spawned at the right edge, then scrolled once.
	if x := p.Pipes()[0].X; math.Abs(x-398) > 1e-9 {
		t.Errorf("first pipe x = %v, expected 398", x)
	}
}

func TestPipesSpacingGuardSkips(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Pipes.SpawnInterval = 30
	p := newTestPipes(cfg, 1)

	// Triggers at 30 (spawn), 60, 90 (too close), 120 (far enough).
	for i := 0; i < 119; i++ {
		p.Update(testTimestep)
	}
	if p.Spawned() != 1 {
		t.Fatalf("Spawned() = %d after 119 frames, expected 1", p.Spawned())
	}

	p.Update(testTimestep)
	if p.Spawned() != 2 {
		t.Fatalf("Spawned() = %d after 120 frames, expected 2", p.Spawned())
	}
}

func TestPipesSpacingInvariant(t *testing.T) {
	for _, seed := range []int64{1, 2, 3, 99} {
		cfg := config.DefaultFlappyConfig()
		cfg.Pipes.SpawnInterval = 45
		p := newTestPipes(cfg, seed)
		minDist := float64(cfg.Canvas.Width) * cfg.Pipes.MinSpacing

		spawned := 0
		for i := 0; i < 10000; i++ {
			p.Update(testTimestep)
			if p.Spawned() == spawned {
				continue
			}
			spawned = p.Spawned()
			if p.Len() < 2 {
				continue
			}
			newest, prev := p.items[p.Len()-1], p.items[p.Len()-2]
			if d := newest.X - prev.X; d < minDist-1e-9 {
				t.Fatalf("seed %d frame %d: spacing %v below %v", seed, i+1, d, minDist)
			}
		}
	}
}

func TestPipesScoreOncePerPipe(t *testing.T) {
	p := newTestPipes(config.DefaultFlappyConfig(), 5)

	prevScore := 0
	for i := 0; i < 20000; i++ {
		p.Update(testTimestep)

		passed := 0
		for _, pipe := range p.items {
			if pipe.Passed {
				passed++
			}
		}
		removed := p.Spawned() - p.Len()
		if p.Score() != removed+passed {
			t.Fatalf("frame %d: score %d, expected %d removed + %d passed", i+1, p.Score(), removed, passed)
		}
		if d := p.Score() - prevScore; d < 0 || d > 1 {
			t.Fatalf("frame %d: score jumped by %d", i+1, d)
		}
		prevScore = p.Score()
	}
	if p.Score() == 0 {
		t.Fatal("expected some pipes to score")
	}
}

func TestPipesDifficultyRamp(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	p := newTestPipes(cfg, 11)

	checked := 0
	last := 0
	for i := 0; i < 100000 && p.Score() < 110; i++ {
		p.Update(testTimestep)
		s := p.Score()
		if s == last {
			continue
		}
		last = s

		k := float64(s / 5)
		if math.Abs(p.Speed()-(cfg.Pipes.Speed+0.2*k)) > 1e-9 {
			t.Fatalf("score %d: speed %v, expected %v", s, p.Speed(), cfg.Pipes.Speed+0.2*k)
		}
		if want := math.Max(80, cfg.Pipes.Gap-2*k); p.Gap() != want {
			t.Fatalf("score %d: gap %v, expected %v", s, p.Gap(), want)
		}
		checked++
	}
	if p.Score() < 110 {
		t.Fatalf("only reached score %d", p.Score())
	}
	if p.Gap() != 80 {
		t.Errorf("gap should be floored at 80, got %v", p.Gap())
	}
	if checked < 110 {
		t.Errorf("checked %d score changes, expected at least 110", checked)
	}
}

func TestPipesHeightWithinBounds(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	p := newTestPipes(cfg, 8)

	seen := 0
	for i := 0; i < 20000; i++ {
		before := p.Spawned()
		p.Update(testTimestep)
		if p.Spawned() == before {
			continue
		}
		newest := p.items[p.Len()-1]
		maxH := float64(cfg.Canvas.Height) - newest.Gap - cfg.Pipes.MinHeight - cfg.Canvas.GroundHeight
		if newest.Height < cfg.Pipes.MinHeight || newest.Height > maxH {
			t.Fatalf("height %v outside [%v, %v]", newest.Height, cfg.Pipes.MinHeight, maxH)
		}
		seen++
	}
	if seen == 0 {
		t.Fatal("no pipes spawned")
	}
}

func TestPipesInvalidGeometrySkipsSpawn(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Canvas.Height = 250
	p := newTestPipes(cfg, 1)

	for i := 0; i < 1000; i++ {
		p.Update(testTimestep)
	}
	if p.Spawned() != 0 {
		t.Errorf("expected no spawns on a canvas without room for the gap, got %d", p.Spawned())
	}

	// Growing the canvas lets the next trigger spawn.
	p.Resize(400, 600)
	for i := 0; i < 120; i++ {
		p.Update(testTimestep)
	}
	if p.Spawned() == 0 {
		t.Error("expected a spawn after resize")
	}
}

func TestPipesRemovedPastMargin(t *testing.T) {
	p := newTestPipes(config.DefaultFlappyConfig(), 1)
	p.items = append(p.items, Pipe{X: -101, Width: 52, Height: 100, Gap: 120, Passed: true})
	p.items = append(p.items, Pipe{X: -100, Width: 52, Height: 100, Gap: 120, Passed: true})

	p.Update(testTimestep)

	// -101-2+52 = -51 is past the margin; -100-2+52 = -50 is not.
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", p.Len())
	}
	if x := p.items[0].X; x != -102 {
		t.Errorf("remaining pipe x = %v, expected -102", x)
	}
}

func TestPipesResizeKeepsRelativePositions(t *testing.T) {
	p := newTestPipes(config.DefaultFlappyConfig(), 1)
	for i := 0; i < 130; i++ {
		p.Update(testTimestep)
	}
	if p.Len() == 0 {
		t.Fatal("expected pipes on screen before resizing")
	}
	before := p.Pipes()
	marker := p.lastSpawnX

	p.Resize(200, 600)

	for i, pipe := range p.Pipes() {
		if want := before[i].X / 2; math.Abs(pipe.X-want) > 1e-9 {
			t.Errorf("pipe %d x = %v, expected %v", i, pipe.X, want)
		}
		if pipe.Width != before[i].Width || pipe.Gap != before[i].Gap {
			t.Errorf("pipe %d geometry changed: %+v -> %+v", i, before[i], pipe)
		}
	}
	if math.Abs(p.lastSpawnX-marker/2) > 1e-9 {
		t.Errorf("lastSpawnX = %v, expected %v", p.lastSpawnX, marker/2)
	}
	for _, pipe := range p.Pipes() {
		if pipe.X > 200 {
			t.Errorf("pipe at x=%v is past the new right edge", pipe.X)
		}
	}
}

func TestPipesReset(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	p := newTestPipes(cfg, 42)
	for i := 0; i < 5000; i++ {
		p.Update(testTimestep)
	}
	first := p.Pipes()

	p.Reset(42)
	if p.Len() != 0 || p.Score() != 0 || p.Spawned() != 0 {
		t.Fatalf("after Reset: len=%d score=%d spawned=%d", p.Len(), p.Score(), p.Spawned())
	}
	if p.Speed() != cfg.Pipes.Speed || p.Gap() != cfg.Pipes.Gap {
		t.Errorf("after Reset: speed=%v gap=%v", p.Speed(), p.Gap())
	}

	for i := 0; i < 5000; i++ {
		p.Update(testTimestep)
	}
	second := p.Pipes()
	if len(first) != len(second) {
		t.Fatalf("replay produced %d pipes, expected %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("pipe %d differs after replay: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestPipesReturnsCopy(t *testing.T) {
	p := newTestPipes(config.DefaultFlappyConfig(), 1)
	for i := 0; i < 60; i++ {
		p.Update(testTimestep)
	}
	view := p.Pipes()
	view[0].X = 1000
	if p.items[0].X == 1000 {
		t.Error("Pipes() should not expose internal storage")
	}
}
