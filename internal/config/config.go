// Package config provides YAML-based game configuration loading and
// difficulty management for the flappy engine.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the Flappy Bird engine.
type FlappyConfig struct {
	Canvas     CanvasConfig     `yaml:"canvas"`
	Bird       BirdConfig       `yaml:"bird"`
	Pipes      PipesConfig      `yaml:"pipes"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Loop       LoopConfig       `yaml:"loop"`
	Effects    EffectsConfig    `yaml:"effects"`
}

// CanvasConfig defines the logical playfield. Hosts scale it to their surface.
type CanvasConfig struct {
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// BirdConfig defines the player entity.
type BirdConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	Gravity           float64 `yaml:"gravity"`            // Velocity gained per reference frame
	FlapImpulse       float64 `yaml:"flap_impulse"`       // Velocity set on flap (negative = up)
	BoundsScale       float64 `yaml:"bounds_scale"`       // Hitbox size relative to sprite
	MinRotation       float64 `yaml:"min_rotation"`       // Radians
	MaxRotation       float64 `yaml:"max_rotation"`       // Radians
	RotationFactor    float64 `yaml:"rotation_factor"`    // Target rotation per unit of velocity
	RotationSmoothing float64 `yaml:"rotation_smoothing"` // Fraction of the remaining angle covered per update
}

// PipesConfig defines obstacle generation.
type PipesConfig struct {
	Width              float64 `yaml:"width"`
	Gap                float64 `yaml:"gap"`
	MinHeight          float64 `yaml:"min_height"`
	Speed              float64 `yaml:"speed"`
	SpawnInterval      int     `yaml:"spawn_interval"`       // Frames between spawn triggers
	FirstSpawnInterval int     `yaml:"first_spawn_interval"` // Trigger period while no pipe is on screen
	MinSpacing         float64 `yaml:"min_spacing"`          // Fraction of canvas width between spawns
	RemovalMargin      float64 `yaml:"removal_margin"`       // Distance past the left edge before removal
	ScoreLine          float64 `yaml:"score_line"`           // Fraction of canvas width a pipe must clear to score
}

// DifficultyConfig defines the score-driven difficulty ramp.
type DifficultyConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Every     int     `yaml:"every"`      // Points per difficulty step
	SpeedStep float64 `yaml:"speed_step"` // Speed added per step
	GapStep   float64 `yaml:"gap_step"`   // Gap removed per step
	MinGap    float64 `yaml:"min_gap"`    // Gap floor
}

// LoopConfig defines the fixed-timestep scheduler.
type LoopConfig struct {
	TimestepMs float64 `yaml:"timestep_ms"`
	MaxFrameMs float64 `yaml:"max_frame_ms"` // Frame delta cap against stalls
}

// EffectsConfig holds the sound/vibration settings.
type EffectsConfig struct {
	Sound          bool `yaml:"sound"`
	Vibration      bool `yaml:"vibration"`
	CelebrateEvery int  `yaml:"celebrate_every"` // Points between celebration vibrations (0 = off)
}

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the config describes a playable game.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas must be positive, got %dx%d", ErrInvalidConfig, c.Canvas.Width, c.Canvas.Height)
	case c.Canvas.GroundHeight < 0:
		return fmt.Errorf("%w: ground_height must not be negative", ErrInvalidConfig)
	case c.Bird.Width <= 0 || c.Bird.Height <= 0:
		return fmt.Errorf("%w: bird size must be positive", ErrInvalidConfig)
	case c.Bird.BoundsScale <= 0 || c.Bird.BoundsScale > 1:
		return fmt.Errorf("%w: bounds_scale must be in (0, 1]", ErrInvalidConfig)
	case c.Bird.MinRotation > c.Bird.MaxRotation:
		return fmt.Errorf("%w: min_rotation exceeds max_rotation", ErrInvalidConfig)
	case c.Pipes.Width <= 0 || c.Pipes.Gap <= 0:
		return fmt.Errorf("%w: pipe width and gap must be positive", ErrInvalidConfig)
	case c.Pipes.SpawnInterval <= 0 || c.Pipes.FirstSpawnInterval <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalidConfig)
	case c.Difficulty.Enabled && c.Difficulty.Every <= 0:
		return fmt.Errorf("%w: difficulty.every must be positive", ErrInvalidConfig)
	case c.Loop.TimestepMs <= 0 || c.Loop.MaxFrameMs < c.Loop.TimestepMs:
		return fmt.Errorf("%w: loop needs 0 < timestep_ms <= max_frame_ms", ErrInvalidConfig)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the presets in menu order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset converts a flag value to a preset. Empty means "use config as is".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// Description returns a one-line explanation for menus and help text.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "Wider gaps, slower pipes"
	case DifficultyNormal:
		return "Classic settings"
	case DifficultyHard:
		return "Narrow gaps, fast pipes"
	case DifficultyFixed:
		return "Classic settings, no speed-up"
	default:
		return ""
	}
}
