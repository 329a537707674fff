// Package telemetry records per-round statistics as CSV and summarizes score
// history.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-flappy/internal/game"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// RoundRecord is one row of rounds.csv.
type RoundRecord struct {
	Round      int     `csv:"round"`
	Mode       string  `csv:"mode"`
	Seed       int64   `csv:"seed"`
	Score      int     `csv:"score"`
	HighScore  int     `csv:"high_score"`
	NewBest    bool    `csv:"new_best"`
	PlayTimeMs int64   `csv:"play_time_ms"`
	Steps      uint64  `csv:"steps"`
	Spawned    int     `csv:"pipes_spawned"`
	FinalSpeed float64 `csv:"final_speed"`
	FinalGap   float64 `csv:"final_gap"`
	AvgFrameMs float64 `csv:"avg_frame_ms"`
	FPS        float64 `csv:"fps"`
}

// NewRoundRecord builds a record from a finished round and the frame stats
// collected while it ran.
func NewRoundRecord(round int, mode string, r game.RoundResult, frames FrameStats) RoundRecord {
	return RoundRecord{
		Round:      round,
		Mode:       mode,
		Seed:       r.Seed,
		Score:      r.Score,
		HighScore:  r.HighScore,
		NewBest:    r.NewBest,
		PlayTimeMs: r.PlayTime.Milliseconds(),
		Steps:      r.Steps,
		Spawned:    r.Spawned,
		FinalSpeed: r.Speed,
		FinalGap:   r.Gap,
		AvgFrameMs: float64(frames.Avg) / float64(time.Millisecond),
		FPS:        frames.FPS,
	}
}

// Recorder appends round records to <dir>/rounds.csv.
type Recorder struct {
	dir           string
	file          *os.File
	headerWritten bool
}

// NewRecorder creates the output directory and file.
// Returns nil if dir is empty (recording disabled); a nil Recorder is usable.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}

	path := filepath.Join(dir, "rounds.csv")
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating rounds.csv: %w", err)
	}

	return &Recorder{dir: dir, file: f}, nil
}

// WriteRound appends one record. The header is written with the first row.
func (r *Recorder) WriteRound(rec RoundRecord) error {
	if r == nil {
		return nil
	}

	records := []RoundRecord{rec}

	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("telemetry: writing round: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			return fmt.Errorf("telemetry: writing round: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.dir
}

// Close closes the output file.
func (r *Recorder) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ScoreRow is one row of an exported score history.
type ScoreRow struct {
	ID         int64  `csv:"id"`
	Mode       string `csv:"mode"`
	Score      int    `csv:"score"`
	DurationMs int64  `csv:"duration_ms"`
	PlayedAt   string `csv:"played_at"`
}

// ExportScores writes the score history as CSV with a header row.
func ExportScores(w io.Writer, entries []storage.ScoreEntry) error {
	rows := make([]ScoreRow, 0, len(entries))
	for _, e := range entries {
		row := ScoreRow{
			ID:         e.ID,
			Mode:       e.Mode,
			Score:      e.Score,
			DurationMs: e.Duration.Milliseconds(),
		}
		if !e.CreatedAt.IsZero() {
			row.PlayedAt = e.CreatedAt.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("telemetry: exporting scores: %w", err)
	}
	return nil
}
