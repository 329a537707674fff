package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty from a menu, then play",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to play. Press B after a
round to return to the menu, Tab in the menu to browse high scores.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit

Examples:
  flappy menu
  flappy menu --fps 30
  flappy menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	addEffectFlags(menuCmd)
	menuCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Directory for per-round CSV telemetry")
}

func runMenu(_ *cobra.Command, _ []string) error {
	gameCfg, _, err := loadGameConfig()
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

	for {
		menuResult, err := tui.RunMenu(store, rt)
		if err != nil {
			return err
		}

		// Update config with any size changes
		rt = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, "", rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		// Fresh pipes for every game unless --seed pins them.
		if flagSeed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		back, err := playOnce(store, recorder, fx, gameCfg, menuResult.Preset, rt, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if !back {
			return nil
		}
	}
}
