package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mj1618/clockface/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"trace", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithOutput_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(config.LogConfig{Level: "warn"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", zap.Int("frame", 3))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestNewWithOutput_JSONEncoding(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithOutput(config.LogConfig{Level: "info", Encoding: "json"}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("rendered", zap.Int("width", 512))
	_ = logger.Sync()

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "rendered" {
		t.Errorf("msg = %v, want rendered", entry["msg"])
	}
	if entry["width"] != float64(512) {
		t.Errorf("width = %v, want 512", entry["width"])
	}
}

func TestNew_FileCore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "clockface.log")
	var buf bytes.Buffer
	logger, err := NewWithOutput(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1}, zapcore.AddSync(&buf))
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("static layer regenerated")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "static layer regenerated") {
		t.Errorf("file log missing entry: %q", data)
	}
	if !strings.Contains(buf.String(), "static layer regenerated") {
		t.Errorf("console log missing entry: %q", buf.String())
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}
