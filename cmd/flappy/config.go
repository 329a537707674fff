package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the game config",
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective game config as YAML",
	Long: `Print the config a game would run with, after the config file search
and the difficulty preset are applied. The output is a valid config file.

Config search order:
  1. --config <path>
  2. ~/.flappy/configs/flappy.yaml
  3. ./configs/flappy.yaml
  4. built-in defaults

Examples:
  flappy config dump
  flappy config dump --difficulty hard
  flappy config dump --defaults > ~/.flappy/configs/flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigDump,
}

func init() {
	addGameConfigFlags(configDumpCmd)
	configDumpCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults, ignoring config files")
	configCmd.AddCommand(configDumpCmd)
}

func runConfigDump(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.GetDefaultYAML())
		return err
	}

	cfg, preset, err := loadGameConfig()
	if err != nil {
		return err
	}
	if preset != "" {
		config.ApplyFlappyPreset(&cfg, preset)
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
