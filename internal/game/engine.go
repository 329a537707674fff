// Package game implements the Flappy Bird simulation: the bird, the pipe
// generator, collision tests and the fixed-timestep engine that ties them
// together. The package has no platform dependencies; hosts drive it by
// calling Engine.Tick once per display frame and draw it through a Surface.
package game

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// State is the session state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Minimum playable canvas.
const (
	MinCanvasWidth  = 200
	MinCanvasHeight = 300
)

// ErrCanvasTooSmall is returned when the canvas cannot hold a playable game.
var ErrCanvasTooSmall = errors.New("canvas too small")

// Options configures a new Engine. Only Config is required.
type Options struct {
	Config       config.FlappyConfig
	Store        KVStore
	Effects      EffectPlayer
	Haptics      Haptics
	Capabilities Capabilities
	Logger       *log.Logger
	Seed         int64            // Seed for the first round; later rounds derive from it
	Now          func() time.Time // Wall clock for play time; defaults to time.Now
}

// RoundResult summarizes a finished round.
type RoundResult struct {
	Score     int
	HighScore int
	NewBest   bool
	PlayTime  time.Duration
	Steps     uint64
	Spawned   int
	Speed     float64
	Gap       float64
	Seed      int64
}

// Stats exposes loop counters for diagnostics.
type Stats struct {
	Frames  uint64 // Ticks received while running or paused
	Steps   uint64 // Physics steps executed
	Pipes   int    // Pipes currently tracked
	Score   int
	Speed   float64
	Running bool
	Paused  bool
}

// BirdState is the bird part of a Snapshot.
type BirdState struct {
	X, Y     float64
	Velocity float64
	Rotation float64
}

// Snapshot is a read-only copy of the simulation state.
type Snapshot struct {
	State     State
	Score     int
	HighScore int
	Bird      BirdState
	Pipes     []Pipe
	Speed     float64
	Gap       float64
}

// Engine owns one Bird and one Pipes for its lifetime and advances them on a
// fixed timestep. All methods except Teardown's wait must be called from a
// single goroutine.
type Engine struct {
	cfg        config.FlappyConfig
	bird       *Bird
	pipes      *Pipes
	difficulty *config.DifficultyManager

	state     State
	score     int
	highScore int

	timestep    float64
	maxFrame    float64
	accumulator float64
	lastTime    float64
	hasLastTime bool

	canvasW, canvasH float64
	groundH          float64

	seed       int64
	rounds     int64
	roundSeed  int64
	roundStart time.Time
	lastRound  RoundResult

	frames uint64
	steps  uint64

	store   KVStore
	effects EffectPlayer
	haptics Haptics
	caps    Capabilities
	logger  *log.Logger
	now     func() time.Time

	writes    sync.WaitGroup
	writeMu   sync.Mutex
	persisted int // Highest score handed to the store, guarded by writeMu
}

// New creates an engine in the Idle state.
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if err := checkCanvas(cfg.Canvas.Width, cfg.Canvas.Height); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		timestep:   cfg.Loop.TimestepMs,
		maxFrame:   cfg.Loop.MaxFrameMs,
		canvasW:    float64(cfg.Canvas.Width),
		canvasH:    float64(cfg.Canvas.Height),
		groundH:    cfg.Canvas.GroundHeight,
		seed:       opts.Seed,
		store:      opts.Store,
		effects:    opts.Effects,
		haptics:    opts.Haptics,
		caps:       opts.Capabilities,
		logger:     opts.Logger,
		now:        opts.Now,
	}
	if e.store == nil {
		e.store = nopStore{}
	}
	if e.effects == nil {
		e.effects = nopEffects{}
	}
	if e.haptics == nil {
		e.haptics = nopEffects{}
	}
	if e.caps == nil {
		e.caps = StaticCapabilities{Sound: cfg.Effects.Sound, Vibration: cfg.Effects.Vibration}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.now == nil {
		e.now = time.Now
	}

	// One reference frame is one physics step.
	e.bird = NewBird(cfg.Bird, e.canvasW/4, e.canvasH/2, e.timestep)
	e.pipes = NewPipes(cfg.Pipes, e.difficulty, e.canvasW, e.canvasH, e.groundH, e.timestep, e.seed)

	return e, nil
}

func checkCanvas(w, h int) error {
	if w < MinCanvasWidth || h < MinCanvasHeight {
		return fmt.Errorf("game: %w (%dx%d, need at least %dx%d)",
			ErrCanvasTooSmall, w, h, MinCanvasWidth, MinCanvasHeight)
	}
	return nil
}

// Init loads the stored high score. A failing store counts as no record.
func (e *Engine) Init() {
	e.highScore = max(e.store.Get(HighScoreKey, 0), 0)

	e.writeMu.Lock()
	e.persisted = e.highScore
	e.writeMu.Unlock()

	e.logger.Debug("engine ready", "high_score", e.highScore,
		"canvas", fmt.Sprintf("%.0fx%.0f", e.canvasW, e.canvasH))
}

// Teardown abandons any round in progress and waits for pending
// high-score writes.
func (e *Engine) Teardown() {
	if e.state == StateRunning || e.state == StatePaused {
		e.state = StateIdle
	}
	e.writes.Wait()
}

// Start begins a new round from Idle or GameOver.
func (e *Engine) Start() {
	if e.state == StateRunning || e.state == StatePaused {
		return
	}

	e.roundSeed = e.seed + e.rounds
	e.rounds++

	e.bird.Reset()
	e.pipes.Reset(e.roundSeed)
	e.score = 0
	e.accumulator = 0
	e.hasLastTime = false
	e.steps = 0
	e.frames = 0
	e.roundStart = e.now()
	e.state = StateRunning

	e.logger.Debug("round started", "seed", e.roundSeed)
}

// Pause freezes a running round.
func (e *Engine) Pause() {
	if e.state != StateRunning {
		return
	}
	e.state = StatePaused
	e.logger.Debug("paused", "score", e.score)
}

// Resume continues a paused round. The next tick re-anchors the clock so the
// time spent paused is never integrated.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.state = StateRunning
	e.hasLastTime = false
	e.logger.Debug("resumed", "score", e.score)
}

// OnPauseToggle switches between Running and Paused.
func (e *Engine) OnPauseToggle() {
	switch e.state {
	case StateRunning:
		e.Pause()
	case StatePaused:
		e.Resume()
	}
}

// OnInput flaps the bird. It does nothing unless a round is running.
func (e *Engine) OnInput() {
	if e.state != StateRunning {
		return
	}
	e.bird.Flap()
	e.playEffect(EffectFlap)
	e.vibrate(vibrateFlap)
}

// Tick advances the simulation to nowMs, a monotonic timestamp in
// milliseconds. It reports whether the host should keep delivering frames.
func (e *Engine) Tick(nowMs float64) bool {
	if e.state != StateRunning && e.state != StatePaused {
		return false
	}
	e.frames++

	assertFinite("tick.now", nowMs)
	if math.IsNaN(nowMs) || math.IsInf(nowMs, 0) {
		// Dropped; the next finite timestamp measures from the last good one.
		return true
	}

	if !e.hasLastTime {
		e.lastTime = nowMs
		e.hasLastTime = true
	}
	delta := core.ClampF(nowMs-e.lastTime, 0, e.maxFrame)
	e.lastTime = nowMs

	if e.state == StatePaused {
		return true
	}

	e.accumulator += delta
	for e.accumulator >= e.timestep {
		e.step()
		e.accumulator -= e.timestep
		if e.state != StateRunning {
			break
		}
	}

	return e.state == StateRunning || e.state == StatePaused
}

// step runs one fixed-size physics update.
func (e *Engine) step() {
	e.steps++

	e.bird.Update(e.timestep)
	e.pipes.Update(e.timestep)

	bounds := e.bird.Bounds()
	if CheckBirdPipes(bounds, e.pipes.items) || CheckBirdBounds(bounds, e.canvasH, e.groundH) {
		e.gameOver()
		return
	}

	if s := e.pipes.Score(); s > e.score {
		e.score = s
		e.playEffect(EffectPoint)
		if every := e.cfg.Effects.CelebrateEvery; every > 0 && s%every == 0 {
			e.vibrate(vibrateCelebrate)
		}
	}
}

func (e *Engine) gameOver() {
	e.state = StateGameOver
	e.playEffect(EffectHit)
	e.vibrate(vibrateHit)

	playTime := e.now().Sub(e.roundStart)
	newBest := e.score > e.highScore
	if newBest {
		e.highScore = e.score
		e.persistHighScore(e.score)
	}

	e.lastRound = RoundResult{
		Score:     e.score,
		HighScore: e.highScore,
		NewBest:   newBest,
		PlayTime:  playTime,
		Steps:     e.steps,
		Spawned:   e.pipes.Spawned(),
		Speed:     e.pipes.Speed(),
		Gap:       e.pipes.Gap(),
		Seed:      e.roundSeed,
	}

	e.logger.Info("game over",
		"score", e.score,
		"high_score", e.highScore,
		"play_time", playTime.Round(100*time.Millisecond))
}

// persistHighScore writes in the background so the frame loop never waits on
// the store. Writes are serialized and never lower the stored value.
func (e *Engine) persistHighScore(score int) {
	e.writes.Add(1)
	go func() {
		defer e.writes.Done()

		e.writeMu.Lock()
		defer e.writeMu.Unlock()
		if score <= e.persisted {
			return
		}
		if !e.store.Set(HighScoreKey, score) {
			e.logger.Warn("high score not saved", "score", score)
			return
		}
		e.persisted = score
	}()
}

func (e *Engine) playEffect(fx Effect) {
	if e.caps.Supports(CapabilitySound) {
		e.effects.PlayEffect(fx)
	}
}

func (e *Engine) vibrate(pattern []time.Duration) {
	if e.caps.Supports(CapabilityVibration) {
		e.haptics.Vibrate(pattern...)
	}
}

// Resize changes the canvas. Pipes keep their relative x position and a
// bird in flight moves to the new spawn column at the same relative height.
func (e *Engine) Resize(width, height int) error {
	if err := checkCanvas(width, height); err != nil {
		return err
	}
	oldH := e.canvasH
	e.canvasW = float64(width)
	e.canvasH = float64(height)
	e.pipes.Resize(e.canvasW, e.canvasH)
	e.bird.SetSpawn(e.canvasW/4, e.canvasH/2)

	switch e.state {
	case StateIdle:
		e.bird.Reset()
	case StateRunning, StatePaused:
		e.bird.X = e.canvasW / 4
		e.bird.Y *= e.canvasH / oldH
	}
	return nil
}

// SetSeed sets the seed used from the next Start onward.
func (e *Engine) SetSeed(seed int64) {
	e.seed = seed
	e.rounds = 0
}

// State returns the session state.
func (e *Engine) State() State {
	return e.state
}

// Score returns the score of the current or last round.
func (e *Engine) Score() int {
	return e.score
}

// HighScore returns the best score known to this session.
func (e *Engine) HighScore() int {
	return e.highScore
}

// LastRound returns the summary of the most recently finished round.
func (e *Engine) LastRound() RoundResult {
	return e.lastRound
}

// Canvas returns the logical canvas size.
func (e *Engine) Canvas() (w, h float64) {
	return e.canvasW, e.canvasH
}

// Snapshot returns a copy of the simulation state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:     e.state,
		Score:     e.score,
		HighScore: e.highScore,
		Bird: BirdState{
			X:        e.bird.X,
			Y:        e.bird.Y,
			Velocity: e.bird.Velocity,
			Rotation: e.bird.Rotation,
		},
		Pipes: e.pipes.Pipes(),
		Speed: e.pipes.Speed(),
		Gap:   e.pipes.Gap(),
	}
}

// Stats returns loop counters for the current round.
func (e *Engine) Stats() Stats {
	return Stats{
		Frames:  e.frames,
		Steps:   e.steps,
		Pipes:   e.pipes.Len(),
		Score:   e.score,
		Speed:   e.pipes.Speed(),
		Running: e.state == StateRunning,
		Paused:  e.state == StatePaused,
	}
}
