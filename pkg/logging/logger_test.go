package logging

import (
	"os"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points the package at a temp directory and resets run state.
func setupTestDir(t *testing.T) {
	t.Helper()

	tempDir := t.TempDir()

	logDirMu.Lock()
	origLogDir := logDir
	logDir = tempDir
	logDirMu.Unlock()

	// A sync.Once cannot be copied for save/restore; leave the run ID
	// state zeroed so the next caller mints a fresh one
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDirMu.Lock()
		logDir = origLogDir
		logDirMu.Unlock()
		runID = ""
		runIDOnce = sync.Once{}
	})
}

func TestNewLogger(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("harness")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "harness" {
		t.Errorf("component = %q", logger.component)
	}
	if logger.RunID() == "" {
		t.Error("RunID should not be empty")
	}
	if logger.LogPath() == "" {
		t.Error("LogPath should not be empty")
	}
	if !strings.HasSuffix(logger.LogPath(), "-e2e.log") {
		t.Errorf("LogPath = %q, want -e2e.log suffix", logger.LogPath())
	}
}

func TestLoggerWritesLevels(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("pages")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.Debugf("clicked %s", "#add-to-cart")
	logger.Infof("navigating to %s", "https://example.com")
	logger.Warnf("popup not present")
	logger.Errorf("element not visible")
	logger.Close()

	data, err := os.ReadFile(logger.LogPath())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	contents := string(data)

	for _, want := range []string{
		"[DEBUG] clicked #add-to-cart",
		"[INFO] navigating to https://example.com",
		"[WARN] popup not present",
		"[ERROR] element not visible",
		"[pages]",
	} {
		if !strings.Contains(contents, want) {
			t.Errorf("log file missing %q", want)
		}
	}
}

func TestLoggersShareRunFile(t *testing.T) {
	setupTestDir(t)

	first, err := NewLogger("browser")
	if err != nil {
		t.Fatalf("Failed to create first logger: %v", err)
	}
	defer first.Close()

	second, err := NewLogger("report")
	if err != nil {
		t.Fatalf("Failed to create second logger: %v", err)
	}
	defer second.Close()

	if first.LogPath() != second.LogPath() {
		t.Errorf("loggers should share a file: %q vs %q", first.LogPath(), second.LogPath())
	}
	if first.RunID() != second.RunID() {
		t.Errorf("loggers should share a run ID: %q vs %q", first.RunID(), second.RunID())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	setupTestDir(t)

	logger, err := NewLogger("harness")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
