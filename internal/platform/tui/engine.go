package tui

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// EngineOptions describes the engine a host builds for one game.
type EngineOptions struct {
	Base    config.FlappyConfig
	Preset  config.DifficultyPreset // Applied on top of Base unless empty
	Store   game.KVStore            // High score record; nil keeps it in memory
	Effects game.EffectPlayer
	Haptics game.Haptics
	Logger  *log.Logger
	Seed    int64 // 0 seeds from the clock
}

// NewEngine builds and initializes an engine for opts.
func NewEngine(opts EngineOptions) (*game.Engine, error) {
	cfg := opts.Base
	if opts.Preset != "" {
		config.ApplyFlappyPreset(&cfg, opts.Preset)
	}

	store := opts.Store
	if store == nil {
		store = storage.NewMemoryKV()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	e, err := game.New(game.Options{
		Config:  cfg,
		Store:   store,
		Effects: opts.Effects,
		Haptics: opts.Haptics,
		Logger:  opts.Logger,
		Seed:    seed,
	})
	if err != nil {
		return nil, err
	}
	e.Init()
	return e, nil
}
