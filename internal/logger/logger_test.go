package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func resetLogger(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Close()
		Logger = nil
	})
}

func TestInitCreatesLogFile(t *testing.T) {
	resetLogger(t)
	dataDir := t.TempDir()

	if err := Init(Config{DataDir: dataDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Warn("entry store opened", "engine", "sqlite")

	data, err := os.ReadFile(LogPath(dataDir))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "entry store opened") {
		t.Errorf("log file does not contain the message: %q", data)
	}
}

func TestNormalModeFiltersDebug(t *testing.T) {
	resetLogger(t)
	dataDir := t.TempDir()
	var stderr bytes.Buffer

	if err := Init(Config{DataDir: dataDir, Stderr: &stderr}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Debug("hidden debug")
	Info("hidden info")

	data, _ := os.ReadFile(LogPath(dataDir))
	if strings.Contains(string(data), "hidden") {
		t.Errorf("debug and info messages should be filtered in normal mode: %q", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("normal mode should not write to stderr, got %q", stderr.String())
	}
}

func TestDebugModeWritesToStderr(t *testing.T) {
	resetLogger(t)
	var stderr bytes.Buffer

	if err := Init(Config{Debug: true, DataDir: t.TempDir(), Stderr: &stderr}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("import progress", "applied", 3)
	if !strings.Contains(stderr.String(), "import progress") {
		t.Errorf("expected debug message on stderr, got %q", stderr.String())
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	if err := Close(); err != nil {
		t.Errorf("Close without Init should be a no-op, got %v", err)
	}
}
