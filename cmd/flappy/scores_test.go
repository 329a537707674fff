package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrintScoresEmpty(t *testing.T) {
	store := openTestStore(t)

	var buf bytes.Buffer
	if err := printScores(&buf, store, ""); err != nil {
		t.Fatalf("printScores() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No scores recorded yet.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestPrintScores(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []struct {
		mode  string
		score int
	}{{"normal", 4}, {"normal", 12}, {"hard", 7}} {
		if _, err := store.SaveScore(s.mode, s.score, 3*time.Second); err != nil {
			t.Fatalf("SaveScore() error = %v", err)
		}
	}
	flagLimit = 10

	var buf bytes.Buffer
	if err := printScores(&buf, store, ""); err != nil {
		t.Fatalf("printScores() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"all difficulties", "Games:   3", "Best:    12", "Median:  7", "By difficulty:", "hard"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := printScores(&buf, store, "hard"); err != nil {
		t.Fatalf("printScores(hard) error = %v", err)
	}
	if strings.Contains(buf.String(), "By difficulty:") || !strings.Contains(buf.String(), "Best:    7") {
		t.Errorf("unexpected hard output:\n%s", buf.String())
	}
}

func TestExportScores(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("easy", 3, time.Second); err != nil {
		t.Fatalf("SaveScore() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := exportScores(store, "", path); err != nil {
		t.Fatalf("exportScores() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[1], "1,easy,3,1000,") {
		t.Errorf("unexpected export:\n%s", data)
	}
}

func TestModeName(t *testing.T) {
	if modeName("") != "normal" {
		t.Error("empty preset should count as normal")
	}
	if modeName(config.DifficultyHard) != "hard" {
		t.Error("preset name should be kept")
	}
}
