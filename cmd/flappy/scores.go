package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

var (
	flagLimit       int
	flagExport      string
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores and stats",
	Long: `Display the top scores and play statistics. Without a difficulty,
scores from every difficulty are listed together.

Examples:
  flappy scores
  flappy scores hard --limit 20
  flappy scores --interactive
  flappy scores normal --export normal.csv
  flappy scores --export -        # CSV to stdout`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of top scores to show")
	scoresCmd.Flags().StringVar(&flagExport, "export", "", "Write the full score history as CSV to a file (- for stdout)")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the score history (the stored best score is kept)")
}

func runScores(_ *cobra.Command, args []string) error {
	var preset config.DifficultyPreset
	if len(args) > 0 {
		p, err := config.ParsePreset(args[0])
		if err != nil {
			return err
		}
		preset = p
	}
	mode := string(preset)

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()
	store.SetLogger(logger)

	switch {
	case flagClear:
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Println("Score history cleared.")
		return nil

	case flagExport != "":
		return exportScores(store, mode, flagExport)

	case flagInteractive:
		rt := runtimeConfig()
		_, err := tui.RunScoreboard(store, preset, rt.ScreenW, rt.ScreenH)
		return err
	}

	return printScores(os.Stdout, store, mode)
}

// exportScores writes the score history for mode as CSV to path.
func exportScores(store *storage.Store, mode, path string) error {
	entries, err := store.AllScores(mode)
	if err != nil {
		return err
	}

	if path == "-" {
		return telemetry.ExportScores(os.Stdout, entries)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := telemetry.ExportScores(f, entries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d scores to %s\n", len(entries), path)
	return nil
}

// printScores prints the top scores, distribution and totals for mode.
func printScores(w io.Writer, store *storage.Store, mode string) error {
	scores, err := store.TopScores(mode, flagLimit)
	if err != nil {
		return err
	}

	title := "all difficulties"
	if mode != "" {
		title = mode
	}
	fmt.Fprintf(w, "High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-6s  %-8s  %-6s  %s\n", "Rank", "Score", "Mode", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-6s  %-8s  %-6s  %s\n", "----", "-----", "----", "----", "----")
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-6d  %-8s  %-6s  %s\n",
			i+1, entry.Score, entry.Mode, entry.Duration.Round(100*time.Millisecond), entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	all, err := store.AllScores(mode)
	if err != nil {
		return err
	}
	values := make([]int, len(all))
	for i, e := range all {
		values[i] = e.Score
	}
	sum := telemetry.Summarize(values)

	stats, err := store.GetGameStats(mode)
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Games:   %d  (%s played)\n", stats.GamesCount, stats.TotalPlayTime.Round(time.Second))
	fmt.Fprintf(w, "Best:    %d\n", stats.HighScore)
	fmt.Fprintf(w, "Mean:    %.1f ± %.1f\n", sum.Mean, sum.StdDev)
	fmt.Fprintf(w, "Median:  %.0f   p90: %.0f\n", sum.Median, sum.P90)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last:    %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}

	if mode == "" {
		return printModeStats(w, store)
	}
	return nil
}

// printModeStats prints one line per difficulty that has been played.
func printModeStats(w io.Writer, store *storage.Store) error {
	byMode, err := store.GetModeStats()
	if err != nil {
		return err
	}
	if len(byMode) < 2 {
		return nil
	}

	modes := make([]string, 0, len(byMode))
	for m := range byMode {
		modes = append(modes, m)
	}
	slices.Sort(modes)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "By difficulty:")
	for _, m := range modes {
		s := byMode[m]
		fmt.Fprintf(w, "  %-8s %4d games, best %d, avg %.1f\n", m, s.GamesCount, s.HighScore, s.AvgScore)
	}
	return nil
}
