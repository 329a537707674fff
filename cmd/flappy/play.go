package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

var (
	flagMute      bool
	flagNoHaptics bool
	flagVolume    float64
	flagTelemetry string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game straight away.

Controls:
  Space/Up/W - Flap (also starts a round)
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Wider gaps, slower pipes
  normal - Classic settings
  hard   - Narrow gaps, fast pipes
  fixed  - Classic settings, no speed-up

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --mute --seed 42
  flappy play --telemetry ./runs/today
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addGameConfigFlags(playCmd)
	addEffectFlags(playCmd)
	playCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Directory for per-round CSV telemetry")
}

// addEffectFlags registers the sound and haptics flags on cmd.
func addEffectFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	cmd.Flags().BoolVar(&flagNoHaptics, "no-haptics", false, "Disable the terminal bell used for vibration")
	cmd.Flags().Float64Var(&flagVolume, "volume", 1, "Sound volume from 0 to 1")
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newTUILogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	recorder, err := telemetry.NewRecorder(flagTelemetry)
	if err != nil {
		return err
	}
	defer recorder.Close()

	fx := newEffects(&gameCfg, logger)
	defer fx.Close()

	rt := runtimeConfig()
	_, err = playOnce(store, recorder, fx, gameCfg, preset, rt, logger)
	return err
}

// effects bundles the sound and haptics collaborators for local play.
type effects struct {
	player  *audio.Player
	haptics game.Haptics
}

// newEffects applies --mute/--no-haptics to cfg and opens the speaker.
func newEffects(cfg *config.FlappyConfig, logger *log.Logger) effects {
	var fx effects

	if flagMute {
		cfg.Effects.Sound = false
	}
	if flagNoHaptics {
		cfg.Effects.Vibration = false
	}

	if cfg.Effects.Sound {
		fx.player = audio.NewPlayer(flagVolume, logger)
		if err := fx.player.Init(); err != nil {
			cfg.Effects.Sound = false
		}
	}
	if cfg.Effects.Vibration {
		fx.haptics = tui.NewBellHaptics(os.Stdout)
	}
	return fx
}

// effectPlayer returns the sound collaborator, or nil when sound is off.
func (fx effects) effectPlayer() game.EffectPlayer {
	if fx.player == nil {
		return nil
	}
	return fx.player
}

func (fx effects) Close() {
	if fx.player != nil {
		fx.player.Close()
	}
}

// playOnce runs one game until the player leaves it. It reports whether the
// player asked for the menu.
func playOnce(store *storage.Store, recorder *telemetry.Recorder, fx effects,
	gameCfg config.FlappyConfig, preset config.DifficultyPreset, rt core.RuntimeConfig, logger *log.Logger,
) (bool, error) {
	var kv game.KVStore
	if store != nil {
		kv = store
	}

	engine, err := tui.NewEngine(tui.EngineOptions{
		Base:    gameCfg,
		Preset:  preset,
		Store:   kv,
		Effects: fx.effectPlayer(),
		Haptics: fx.haptics,
		Logger:  logger,
		Seed:    rt.Seed,
	})
	if err != nil {
		return false, fmt.Errorf("cannot create game: %w", err)
	}
	defer engine.Teardown()

	back, err := tui.RunGame(tui.GameOptions{
		Engine:   engine,
		Scores:   store,
		Recorder: recorder,
		Mode:     modeName(preset),
		FPS:      rt.TickRate,
		Width:    rt.ScreenW,
		Height:   rt.ScreenH,
		Logger:   logger,
	})
	if err != nil {
		return false, fmt.Errorf("error running game: %w", err)
	}
	return back, nil
}
