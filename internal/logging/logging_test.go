package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()

	if filepath.Base(path) != "devdoctor.log" {
		t.Errorf("DefaultLogPath should end with devdoctor.log, got: %s", path)
	}
	if !strings.Contains(path, ".devdoctor") || !strings.Contains(path, "logs") {
		t.Errorf("DefaultLogPath should live under .devdoctor/logs, got: %s", path)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got: %s", cfg.Level)
	}
	if cfg.MaxSizeMB != 10 {
		t.Errorf("expected MaxSizeMB 10, got: %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 5 {
		t.Errorf("expected MaxBackups 5, got: %d", cfg.MaxBackups)
	}
	if cfg.WriteToStderr {
		t.Error("expected WriteToStderr to be false")
	}
}

func TestDebugConfig(t *testing.T) {
	if got := DebugConfig().Level; got != "debug" {
		t.Errorf("expected level 'debug', got: %s", got)
	}
}

func TestSetup_WritesJSONRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "devdoctor.log")
	cfg := DebugConfig()
	cfg.FilePath = path

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Debug("check finished", slog.String("check", "disk"))
	cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if record["msg"] != "check finished" || record["check"] != "disk" {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestSetup_RespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devdoctor.log")
	cfg := DefaultConfig()
	cfg.FilePath = path

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("shown")
	cleanup()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Error("debug record written at info level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("info record missing")
	}
}

func TestSetup_EmptyPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FilePath = ""

	if _, _, err := Setup(cfg); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestDiscard(t *testing.T) {
	if Discard().Enabled(context.Background(), slog.LevelError) {
		t.Error("Discard logger should not be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
