package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	log, f := setupLogging(false)
	if f != nil {
		f.Close()
		t.Fatal("expected nil log file when debug=false")
	}
	if log.GetLevel() != zerolog.Disabled {
		t.Fatalf("level = %s, want disabled", log.GetLevel())
	}
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	log, f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file when debug=true")
	}
	log.Debug().Msg("test message")
	f.Close()

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected log file to contain content")
	}
}

type cleanupRecorder struct{ calls int }

func (c *cleanupRecorder) Cleanup() { c.calls++ }

func TestCrashCleanupReleasesResources(t *testing.T) {
	t.Chdir(t.TempDir())

	log, f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file when debug=true")
	}
	sounds := &cleanupRecorder{}
	crashCleanup(log, f, sounds, "boom")

	if sounds.calls != 1 {
		t.Fatalf("sound cleanup calls = %d, want 1", sounds.calls)
	}
	if err := f.Close(); err == nil {
		t.Fatal("expected log file to be closed already")
	}
	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"panic":"boom"`) {
		t.Fatalf("log file missing panic entry: %s", data)
	}
}

func TestCrashCleanupWithoutLogFile(t *testing.T) {
	sounds := &cleanupRecorder{}
	crashCleanup(zerolog.Nop(), nil, sounds, "boom")
	if sounds.calls != 1 {
		t.Fatalf("sound cleanup calls = %d, want 1", sounds.calls)
	}
}
