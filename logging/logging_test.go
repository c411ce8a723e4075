package logging

import (
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"

	"cinetix-cli/config"
)

func TestNew_WritesToFile(t *testing.T) {
	cfg := config.LogConfig{Dir: t.TempDir(), MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	logger.Info("booking submitted", zap.String("order", "ORD123456"))
	_ = logger.Sync()

	data, err := os.ReadFile(Path(cfg))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "ORD123456") || !strings.Contains(string(data), "timestamp") {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestNew_DebugLevel(t *testing.T) {
	cfg := config.LogConfig{Dir: t.TempDir(), Debug: true, MaxSizeMB: 1}

	logger, err := New(cfg)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected debug level enabled")
	}
}
