package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	cleanup, err := Setup(path, true, false)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	Debugf("loaded %d records", 3)
	log.Printf("plain line")
	cleanup()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.Contains(text, "[DEBUG] loaded 3 records") || !strings.Contains(text, "plain line") {
		t.Fatalf("log file = %q", text)
	}
}

func TestDebugfSilentWithoutDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiet.log")
	cleanup, err := Setup(path, false, false)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	Debugf("hidden")
	cleanup()
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Fatalf("debug line written with debug off")
	}
	if debugMode {
		t.Fatalf("debug mode left on")
	}
}

func TestSetupBadPath(t *testing.T) {
	if _, err := Setup(filepath.Join(t.TempDir(), "missing", "x.log"), false, false); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
}
