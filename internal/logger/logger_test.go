package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitWritesLogFile(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	closer, err := Init(Config{Level: "debug", Dir: dir})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info("server started", "port", "8000")
	Debug("debug line", "k", "v")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "server.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "server started") || !strings.Contains(out, "port=8000") {
		t.Errorf("log file missing info line: %q", out)
	}
	if !strings.Contains(out, "debug line") {
		t.Errorf("debug level not honored: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	var buf bytes.Buffer
	Set(log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel}))

	Info("hidden")
	Warn("shown", "habit_id", 7)
	Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "habit_id=7") || !strings.Contains(out, "also shown") {
		t.Errorf("missing warn/error lines: %q", out)
	}
}

func TestInitWithoutDir(t *testing.T) {
	prev := Get()
	t.Cleanup(func() { Set(prev) })

	closer, err := Init(Config{Level: "bogus"})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if Get().GetLevel() != log.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %v", Get().GetLevel())
	}
}
