package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"log/slog"
)

func TestWeekKey(t *testing.T) {
	testCases := []struct {
		name string
		time time.Time
		want string
	}{
		{"mid-year", time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC), "2026-W35"},
		{"single-digit week padded", time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC), "2026-W06"},
		{"iso year rollover", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026-W53"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := weekKey(tc.time); got != tc.want {
				t.Errorf("weekKey(%v) = %q, want %q", tc.time, got, tc.want)
			}
		})
	}
}

func TestRotatingLoggerWritesWeeklyFile(t *testing.T) {
	dir := t.TempDir()

	rl := NewRotatingLogger(dir, 4)
	defer rl.Close()

	if _, err := rl.Write([]byte("first line\n")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := filepath.Join(dir, "app-"+weekKey(time.Now())+".log")
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Expected log file %s: %v", want, err)
	}
	if !strings.Contains(string(data), "first line") {
		t.Errorf("Log file missing written content, got %q", string(data))
	}
}

func TestSetupLoggerWithoutDir(t *testing.T) {
	logger := SetupLogger("", 4, slog.LevelInfo)
	if logger == nil {
		t.Fatal("Expected a console-only logger for empty log dir")
	}
	// Must not create any files
	logger.Info("console only")
}

func TestSetupLoggerCreatesLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger := SetupLogger(dir, 4, slog.LevelInfo)
	if logger == nil {
		t.Fatal("Expected a logger")
	}
	logger.Info("hello")

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Expected log directory to be created: %v", err)
	}
	if len(entries) == 0 {
		t.Error("Expected a log file in the directory")
	}
}
