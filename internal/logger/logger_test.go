package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: false, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}

	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitDebugModeWritesToStderr(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Stderr: &buf}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}

	Debug("planning run", "free_slots", 3)

	out := buf.String()
	if !strings.Contains(out, "planning run") {
		t.Errorf("expected debug output on stderr, got %q", out)
	}
	if !strings.Contains(out, "free_slots=3") {
		t.Errorf("expected key/value pair in output, got %q", out)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil
	file = nil
	if Path() != "" {
		t.Errorf("Path() before Init = %q, want empty", Path())
	}
	if err := Close(); err != nil {
		t.Errorf("Close() before Init = %v", err)
	}

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWithUnwritableDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	// A regular file where the config directory should be
	if err := Init(Config{ConfigDir: blocker}); err == nil {
		t.Error("expected error when config dir is a file")
	}
}

func TestDefaultLevelWritesWarningsToFile(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	want := filepath.Join(configDir, "logs", "studyslot.log")
	if Path() != want {
		t.Fatalf("Path() = %q, want %q", Path(), want)
	}

	Info("generated recommendations", "recommended", 2)
	Warn("Automatic backup failed", "error", "disk full")
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Automatic backup failed") {
		t.Errorf("expected warning in log file, got %q", out)
	}
	if strings.Contains(out, "generated recommendations") {
		t.Errorf("info records should be filtered outside debug mode, got %q", out)
	}
}
