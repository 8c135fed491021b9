package logging

import (
	"os"
	"strings"
	"sync"
	"testing"
)

// setupTestDir points the package at a temp directory and resets global state
func setupTestDir(t *testing.T) (cleanup func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "orchestrator-logging-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	// Save original state
	origLogDir := logDir
	origOverride := overrideDir
	origInitErr := initErr
	origRunID := runID

	// Reset global state
	logDir = tempDir
	overrideDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	runID = ""
	runIDOnce = sync.Once{}

	return func() {
		logDir = origLogDir
		overrideDir = origOverride
		initErr = origInitErr
		initOnce = sync.Once{}
		runID = origRunID
		runIDOnce = sync.Once{}

		os.RemoveAll(tempDir)
	}
}

func TestNewLogger(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("tab-registry")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	if logger.component != "tab-registry" {
		t.Errorf("Expected component 'tab-registry', got %q", logger.component)
	}
	if logger.runID == "" {
		t.Error("Expected non-empty run ID")
	}
	if logger.logPath == "" {
		t.Error("Expected non-empty log path")
	}
	if _, err := os.Stat(logger.logPath); os.IsNotExist(err) {
		t.Errorf("Log file does not exist at %s", logger.logPath)
	}
}

func TestLoggerFormatting(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("resolver")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Infof("resolved %d elements", 3)
	logger.Warnf("poll timed out")

	data, err := os.ReadFile(logger.logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	content := string(data)
	if !strings.Contains(content, "[resolver] [INFO] resolved 3 elements") {
		t.Errorf("Missing formatted info entry, got:\n%s", content)
	}
	if !strings.Contains(content, "[resolver] [WARN] poll timed out") {
		t.Errorf("Missing formatted warn entry, got:\n%s", content)
	}
}

func TestLoggersShareRunFile(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	first, err := NewLogger("manager")
	if err != nil {
		t.Fatalf("Failed to create first logger: %v", err)
	}
	defer first.Close()

	second, err := NewLogger("driver")
	if err != nil {
		t.Fatalf("Failed to create second logger: %v", err)
	}
	defer second.Close()

	if first.LogPath() != second.LogPath() {
		t.Errorf("Expected both components to share one run file, got %q and %q",
			first.LogPath(), second.LogPath())
	}
	if first.RunID() != second.RunID() {
		t.Errorf("Expected matching run IDs, got %q and %q", first.RunID(), second.RunID())
	}
}

func TestLoggerCloseIdempotent(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("connector")
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Errorf("First close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Second close failed: %v", err)
	}
}
