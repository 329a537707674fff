package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Canvas: CanvasConfig{
			Width:        400,
			Height:       600,
			GroundHeight: 80,
		},
		Bird: BirdConfig{
			Width:             34,
			Height:            24,
			Gravity:           0.5,
			FlapImpulse:       -8,
			BoundsScale:       0.8,
			MinRotation:       -0.44,
			MaxRotation:       1.57,
			RotationFactor:    0.1,
			RotationSmoothing: 0.1,
		},
		Pipes: PipesConfig{
			Width:              52,
			Gap:                120,
			MinHeight:          60,
			Speed:              2,
			SpawnInterval:      120,
			FirstSpawnInterval: 60,
			MinSpacing:         0.4,
			RemovalMargin:      50,
			ScoreLine:          0.25,
		},
		Difficulty: DifficultyConfig{
			Enabled:   true,
			Every:     5,
			SpeedStep: 0.2,
			GapStep:   2,
			MinGap:    80,
		},
		Loop: LoopConfig{
			TimestepMs: 1000.0 / 60.0,
			MaxFrameMs: 100,
		},
		Effects: EffectsConfig{
			Sound:          true,
			Vibration:      true,
			CelebrateEvery: 10,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultFlappyYAML
}
