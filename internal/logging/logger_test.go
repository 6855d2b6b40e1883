package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/mediarestore/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	if l.FilePath() != "" {
		t.Errorf("FilePath() = %q, want empty", l.FilePath())
	}
	l.Info("test message")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogEnabled = true
	cfg.CasePath = filepath.Join(dir, "export01.json")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(filepath.Join(dir, "export01.log"))
	if !bytes.Contains(b, []byte("INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
}

// Re-running with logging enabled must append, never truncate.
func TestNewLogger_AppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogEnabled = true
	cfg.CasePath = filepath.Join(dir, "export01.json")

	for _, msg := range []string{"first run", "second run"} {
		l, err := NewLogger(&cfg)
		if err != nil {
			t.Fatal(err)
		}
		l.Info(msg)
		if err := l.Close(); err != nil {
			t.Fatal(err)
		}
	}

	b, _ := os.ReadFile(filepath.Join(dir, "export01.log"))
	if !bytes.Contains(b, []byte("first run")) || !bytes.Contains(b, []byte("second run")) {
		t.Errorf("log should contain both runs, got: %s", string(b))
	}
}
